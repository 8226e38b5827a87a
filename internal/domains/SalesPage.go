package domains

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type PageStatus string

const (
	PageDraft     PageStatus = "draft"
	PagePublished PageStatus = "published"
)

type Template string

const (
	TemplateModern  Template = "modern"
	TemplateBold    Template = "bold"
	TemplateMinimal Template = "minimal"
)

const DefaultPageTitle = "Untitled Page"

var (
	ErrElementNotFound = errors.New("element not found")
	ErrInvalidStatus   = errors.New("invalid page status")
	ErrInvalidTemplate = errors.New("invalid template")
)

func ParsePageStatus(raw string) (PageStatus, error) {
	switch PageStatus(raw) {
	case PageDraft, PagePublished:
		return PageStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// ParseTemplate treats an empty value as the modern template.
func ParseTemplate(raw string) (Template, error) {
	switch Template(raw) {
	case "":
		return TemplateModern, nil
	case TemplateModern, TemplateBold, TemplateMinimal:
		return Template(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTemplate, raw)
}

type SalesPage struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Template  Template       `json:"template"`
	Status    PageStatus     `json:"status"`
	ProductID string         `json:"productId"`
	Elements  []ContentBlock `json:"elements"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type PageCreate struct {
	Title     string   `json:"title"`
	ProductID string   `json:"productId"`
	Template  Template `json:"template"`
}

// PageSettings holds the page-level fields editable from the builder. Nil fields are left as is.
type PageSettings struct {
	Title     *string   `json:"title,omitempty"`
	Template  *Template `json:"template,omitempty"`
	ProductID *string   `json:"productId,omitempty"`
}

// Slugify lower-cases title and collapses every whitespace run into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func NewSalesPage(initial PageCreate, now time.Time) *SalesPage {
	title := initial.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultPageTitle
	}
	template := initial.Template
	if template == "" {
		template = TemplateModern
	}
	return &SalesPage{
		ID:        uuid.NewString(),
		Title:     title,
		Slug:      Slugify(title),
		Template:  template,
		Status:    PageDraft,
		ProductID: initial.ProductID,
		Elements:  []ContentBlock{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *SalesPage) IsPublished() bool {
	return p.Status == PagePublished
}

func (p *SalesPage) AppendElement(kind BlockKind, now time.Time) ContentBlock {
	block := ContentBlock{
		ID:      uuid.NewString(),
		Kind:    kind,
		Content: DefaultContent(kind),
	}
	p.Elements = append(p.Elements, block)
	p.touch(now)
	return block.Clone()
}

func (p *SalesPage) UpdateElementContent(elementID string, patch ContentPatch, now time.Time) (ContentBlock, error) {
	for i := range p.Elements {
		if p.Elements[i].ID != elementID {
			continue
		}
		merged, err := MergeContent(p.Elements[i].Content, patch)
		if err != nil {
			return ContentBlock{}, err
		}
		p.Elements[i].Content = merged
		p.touch(now)
		return p.Elements[i].Clone(), nil
	}
	return ContentBlock{}, fmt.Errorf("%w: %s", ErrElementNotFound, elementID)
}

// RemoveElement reports whether a block was removed. Unknown ids leave the page untouched.
func (p *SalesPage) RemoveElement(elementID string, now time.Time) bool {
	kept := p.Elements[:0:0]
	for _, el := range p.Elements {
		if el.ID != elementID {
			kept = append(kept, el)
		}
	}
	if len(kept) == len(p.Elements) {
		return false
	}
	p.Elements = kept
	p.touch(now)
	return true
}

func (p *SalesPage) SetStatus(status PageStatus, now time.Time) {
	p.Status = status
	p.touch(now)
}

// UpdateSettings never recomputes the slug, so published links keep working after a rename.
func (p *SalesPage) UpdateSettings(settings PageSettings, now time.Time) {
	if settings.Title != nil {
		p.Title = *settings.Title
	}
	if settings.Template != nil {
		p.Template = *settings.Template
	}
	if settings.ProductID != nil {
		p.ProductID = *settings.ProductID
	}
	p.touch(now)
}

func (p *SalesPage) touch(now time.Time) {
	if !now.After(p.UpdatedAt) {
		now = p.UpdatedAt.Add(time.Microsecond)
	}
	p.UpdatedAt = now
}

func (p *SalesPage) Clone() *SalesPage {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Elements = make([]ContentBlock, len(p.Elements))
	for i, el := range p.Elements {
		cp.Elements[i] = el.Clone()
	}
	return &cp
}

// CheckoutURL builds the shareable buyer link for a page.
func CheckoutURL(origin, pageID string) string {
	return strings.TrimRight(origin, "/") + "/checkout/" + pageID
}
