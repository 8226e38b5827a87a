package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"salesdash/internal/domains"
)

type PageService struct {
	pages    PageStore
	products ProductStore
	origin   string
	now      func() time.Time

	// serializes load-mutate-save so edits to a page apply in call order
	mu sync.Mutex
}

func NewPageService(pages PageStore, products ProductStore, publicOrigin string) *PageService {
	return &PageService{
		pages:    pages,
		products: products,
		origin:   publicOrigin,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *PageService) CreatePage(ctx context.Context, payload domains.PageCreate) (*domains.SalesPage, error) {
	template, err := domains.ParseTemplate(string(payload.Template))
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"template": err.Error()}}
	}
	payload.Template = template
	if payload.ProductID != "" {
		if _, err := s.products.GetProduct(ctx, payload.ProductID); err != nil {
			return nil, fmt.Errorf("load product: %w", err)
		}
	}

	page := domains.NewSalesPage(payload, s.now())
	if err := s.pages.SavePage(ctx, page); err != nil {
		slog.Error("Save page error", "err", err)
		return nil, err
	}
	slog.Info("sales page created", "page", page.ID, "slug", page.Slug, "template", page.Template)
	return page, nil
}

func (s *PageService) GetPage(ctx context.Context, pageID string) (*domains.SalesPage, error) {
	return s.pages.GetPage(ctx, pageID)
}

func (s *PageService) ListPages(ctx context.Context) ([]*domains.SalesPage, error) {
	return s.pages.ListPages(ctx)
}

func (s *PageService) DeletePage(ctx context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pages.DeletePage(ctx, pageID); err != nil {
		return err
	}
	slog.Info("sales page deleted", "page", pageID)
	return nil
}

func (s *PageService) AppendElement(ctx context.Context, pageID string, kind domains.BlockKind) (domains.ContentBlock, error) {
	if _, err := domains.ParseBlockKind(string(kind)); err != nil {
		return domains.ContentBlock{}, &ValidationError{Fields: map[string]string{"kind": err.Error()}}
	}
	var block domains.ContentBlock
	_, err := s.mutate(ctx, pageID, func(page *domains.SalesPage, now time.Time) error {
		block = page.AppendElement(kind, now)
		return nil
	})
	return block, err
}

// UpdateElementContent returns domains.ErrElementNotFound for an unknown element and
// leaves the page untouched.
func (s *PageService) UpdateElementContent(ctx context.Context, pageID, elementID string, patch domains.ContentPatch) (domains.ContentBlock, error) {
	var block domains.ContentBlock
	_, err := s.mutate(ctx, pageID, func(page *domains.SalesPage, now time.Time) error {
		var err error
		block, err = page.UpdateElementContent(elementID, patch, now)
		return err
	})
	return block, err
}

// RemoveElement is idempotent: removing an absent element returns the page unchanged.
func (s *PageService) RemoveElement(ctx context.Context, pageID, elementID string) (*domains.SalesPage, error) {
	return s.mutate(ctx, pageID, func(page *domains.SalesPage, now time.Time) error {
		if !page.RemoveElement(elementID, now) {
			return errNoChange
		}
		return nil
	})
}

func (s *PageService) SetStatus(ctx context.Context, pageID string, status domains.PageStatus) (*domains.SalesPage, error) {
	if _, err := domains.ParsePageStatus(string(status)); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"status": err.Error()}}
	}
	page, err := s.mutate(ctx, pageID, func(page *domains.SalesPage, now time.Time) error {
		page.SetStatus(status, now)
		return nil
	})
	if err == nil {
		slog.Info("sales page status changed", "page", pageID, "status", status)
	}
	return page, err
}

func (s *PageService) Publish(ctx context.Context, pageID string) (*domains.SalesPage, error) {
	return s.SetStatus(ctx, pageID, domains.PagePublished)
}

func (s *PageService) Unpublish(ctx context.Context, pageID string) (*domains.SalesPage, error) {
	return s.SetStatus(ctx, pageID, domains.PageDraft)
}

func (s *PageService) UpdateSettings(ctx context.Context, pageID string, settings domains.PageSettings) (*domains.SalesPage, error) {
	if settings.Template != nil {
		template, err := domains.ParseTemplate(string(*settings.Template))
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"template": err.Error()}}
		}
		settings.Template = &template
	}
	if settings.ProductID != nil && *settings.ProductID != "" {
		if _, err := s.products.GetProduct(ctx, *settings.ProductID); err != nil {
			return nil, fmt.Errorf("load product: %w", err)
		}
	}
	return s.mutate(ctx, pageID, func(page *domains.SalesPage, now time.Time) error {
		page.UpdateSettings(settings, now)
		return nil
	})
}

func (s *PageService) ShareURL(ctx context.Context, pageID string) (string, error) {
	page, err := s.pages.GetPage(ctx, pageID)
	if err != nil {
		return "", err
	}
	return domains.CheckoutURL(s.origin, page.ID), nil
}

func (s *PageService) mutate(ctx context.Context, pageID string, apply func(page *domains.SalesPage, now time.Time) error) (*domains.SalesPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.pages.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if err := apply(page, s.now()); err != nil {
		if err == errNoChange {
			return page, nil
		}
		return nil, err
	}
	if err := s.pages.SavePage(ctx, page); err != nil {
		slog.Error("Save page error", "err", err, "page", pageID)
		return nil, err
	}
	return page, nil
}
