package garden

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vovakirdan/tui-garden/internal/catalog"
)

// CustomItemRequest describes a player-authored plant.
type CustomItemRequest struct {
	Name  string       `validate:"required,max=40"`
	Glyph string       `validate:"required,max=16"`
	Rate  float64      `validate:"gte=0"`
	Size  catalog.Size `validate:"omitempty,oneof=sm md lg xl planetary"`
}

var validate = validator.New()

// CreateCustomCatalogItem appends a free plant to the catalog. It does not
// place an instance.
func (e *Economy) CreateCustomCatalogItem(req CustomItemRequest) (catalog.Item, error) {
	if !e.state.Creator {
		return catalog.Item{}, fmt.Errorf("%w: creator panel required", ErrLockedByPrerequisite)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Glyph = strings.TrimSpace(req.Glyph)
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return catalog.Item{}, fmt.Errorf("%w: %s failed %s", ErrValidation, verrs[0].Field(), verrs[0].Tag())
		}
		return catalog.Item{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Size == "" {
		req.Size = catalog.SizeSmall
	}

	it := catalog.Item{
		ID:          e.catalog.NextCustomID(),
		Name:        req.Name,
		Glyph:       req.Glyph,
		Description: "Custom creation.",
		Rate:        req.Rate,
		Category:    catalog.CategoryPlant,
		Size:        req.Size,
		IsCustom:    true,
	}
	e.catalog.Extend(it)
	e.state.Custom = append(e.state.Custom, it)
	e.emit(Event{Kind: EventCustomItem, CatalogID: it.ID, Category: it.Category})
	return it, nil
}
