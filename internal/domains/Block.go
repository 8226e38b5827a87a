package domains

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type BlockKind string

const (
	BlockHero         BlockKind = "hero"
	BlockFeatures     BlockKind = "features"
	BlockTestimonials BlockKind = "testimonials"
	BlockVideo        BlockKind = "video"
	BlockPricing      BlockKind = "pricing"
)

var (
	ErrUnknownBlockKind    = errors.New("unknown block kind")
	ErrInvalidContentPatch = errors.New("invalid content patch")
)

// BlockKinds lists every kind in the order the builder palette shows them.
func BlockKinds() []BlockKind {
	return []BlockKind{BlockHero, BlockFeatures, BlockTestimonials, BlockVideo, BlockPricing}
}

func ParseBlockKind(raw string) (BlockKind, error) {
	for _, kind := range BlockKinds() {
		if string(kind) == raw {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBlockKind, raw)
}

// BlockContent is implemented only by the content records in this file.
type BlockContent interface {
	Kind() BlockKind
	clone() BlockContent
}

type HeroContent struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline"`
	CtaText         string `json:"ctaText"`
	BackgroundImage string `json:"backgroundImage"`
}

type FeaturesContent struct {
	Title    string   `json:"title"`
	Features []string `json:"features"`
}

type Testimonial struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Avatar string `json:"avatar"`
}

// UnmarshalJSON requires name, text and avatar on every entry.
func (t *Testimonial) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("testimonial must be an object")
	}
	values := map[string]*string{"name": &t.Name, "text": &t.Text, "avatar": &t.Avatar}
	for key := range raw {
		if _, ok := values[key]; !ok {
			return fmt.Errorf("testimonial has no field %q", key)
		}
	}
	for key, dst := range values {
		value, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("testimonial field %q is required", key)
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return fmt.Errorf("testimonial field %q: %w", key, err)
		}
	}
	return nil
}

type TestimonialsContent struct {
	Title        string        `json:"title"`
	Testimonials []Testimonial `json:"testimonials"`
}

type VideoContent struct {
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
}

type PricingContent struct {
	Title    string   `json:"title"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
	CtaText  string   `json:"ctaText"`
}

func (HeroContent) Kind() BlockKind         { return BlockHero }
func (FeaturesContent) Kind() BlockKind     { return BlockFeatures }
func (TestimonialsContent) Kind() BlockKind { return BlockTestimonials }
func (VideoContent) Kind() BlockKind        { return BlockVideo }
func (PricingContent) Kind() BlockKind      { return BlockPricing }

func (c HeroContent) clone() BlockContent  { return c }
func (c VideoContent) clone() BlockContent { return c }

func (c FeaturesContent) clone() BlockContent {
	c.Features = append([]string(nil), c.Features...)
	return c
}

func (c TestimonialsContent) clone() BlockContent {
	c.Testimonials = append([]Testimonial(nil), c.Testimonials...)
	return c
}

func (c PricingContent) clone() BlockContent {
	c.Features = append([]string(nil), c.Features...)
	return c
}

// DefaultContent returns a fresh copy of the starter content for kind.
// It panics for kinds outside the closed set; validate input with ParseBlockKind.
func DefaultContent(kind BlockKind) BlockContent {
	switch kind {
	case BlockHero:
		return HeroContent{
			Headline:        "Your Amazing Product",
			Subheadline:     "Transform your life with our revolutionary solution",
			CtaText:         "Get Started Now",
			BackgroundImage: "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=1200&h=600&fit=crop",
		}
	case BlockFeatures:
		return FeaturesContent{
			Title:    "Amazing Features",
			Features: []string{"Feature 1", "Feature 2", "Feature 3", "Feature 4"},
		}
	case BlockTestimonials:
		return TestimonialsContent{
			Title: "What Our Customers Say",
			Testimonials: []Testimonial{{
				Name:   "John Doe",
				Text:   "This product changed my life!",
				Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=64&h=64&fit=crop&crop=face",
			}},
		}
	case BlockVideo:
		return VideoContent{
			Title:    "Watch Our Demo",
			VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		}
	case BlockPricing:
		return PricingContent{
			Title:    "Choose Your Plan",
			Price:    "$97",
			Features: []string{"Feature 1", "Feature 2", "Feature 3"},
			CtaText:  "Buy Now",
		}
	}
	panic(fmt.Sprintf("domains: no default content for block kind %q", kind))
}

// ContentPatch carries raw JSON values keyed by content field name.
type ContentPatch map[string]json.RawMessage

// MergeContent overwrites the fields named in patch and keeps the rest.
// Unknown fields, null values and values of the wrong type are rejected.
func MergeContent(content BlockContent, patch ContentPatch) (BlockContent, error) {
	switch c := content.(type) {
	case HeroContent:
		return mergeInto(c, patch)
	case FeaturesContent:
		return mergeInto(c, patch)
	case TestimonialsContent:
		return mergeInto(c, patch)
	case VideoContent:
		return mergeInto(c, patch)
	case PricingContent:
		return mergeInto(c, patch)
	}
	return nil, fmt.Errorf("%w: unsupported content %T", ErrInvalidContentPatch, content)
}

func mergeInto[T BlockContent](current T, patch ContentPatch) (BlockContent, error) {
	encoded, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	for name, value := range patch {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidContentPatch, current.Kind(), name)
		}
		if len(bytes.TrimSpace(value)) == 0 || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, fmt.Errorf("%w: field %q cannot be null", ErrInvalidContentPatch, name)
		}
		fields[name] = value
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContentPatch, err)
	}
	var out T
	if err := decodeStrict(merged, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContentPatch, err)
	}
	return out, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type ContentBlock struct {
	ID      string       `json:"id"`
	Kind    BlockKind    `json:"kind"`
	Content BlockContent `json:"content"`
}

func (b ContentBlock) Clone() ContentBlock {
	if b.Content != nil {
		b.Content = b.Content.clone()
	}
	return b
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string          `json:"id"`
		Kind    BlockKind       `json:"kind"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind, err := ParseBlockKind(string(raw.Kind))
	if err != nil {
		return err
	}
	content := DefaultContent(kind)
	if len(raw.Content) > 0 && !bytes.Equal(raw.Content, []byte("null")) {
		var patch ContentPatch
		if err := json.Unmarshal(raw.Content, &patch); err != nil {
			return fmt.Errorf("decode %s content: %w", kind, err)
		}
		if content, err = MergeContent(content, patch); err != nil {
			return err
		}
	}
	b.ID = raw.ID
	b.Kind = kind
	b.Content = content
	return nil
}
