// Package catalog статический каталог площадок, встроенный в бинарник.
// Используется резолвером как последний источник после БД.
package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/types"
)

//go:embed fallback_grounds.toml
var fallbackGrounds []byte

type fileRange struct {
	Start   string  `toml:"start"`
	End     string  `toml:"end"`
	PerHour float64 `toml:"per_hour"`
}

type fileFacility struct {
	ID       string      `toml:"id"`
	Name     string      `toml:"name"`
	Location string      `toml:"location"`
	Currency string      `toml:"currency"`
	PerHour  float64     `toml:"per_hour"`
	Discount float64     `toml:"discount"`
	Ranges   []fileRange `toml:"range"`
}

type file struct {
	Facilities []fileFacility `toml:"facility"`
}

// Catalog неизменяемый набор площадок
type Catalog struct {
	facilities map[string]*domain.Facility
	order      []string
}

// NewDefault загружает встроенный каталог
func NewDefault() (*Catalog, error) {
	return Parse(fallbackGrounds)
}

// Parse разбирает каталог в формате TOML
func Parse(data []byte) (*Catalog, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		facilities: make(map[string]*domain.Facility, len(f.Facilities)),
		order:      make([]string, 0, len(f.Facilities)),
	}

	for i, ff := range f.Facilities {
		facility, err := ff.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: facility #%d: %v", ErrInvalidCatalog, i, err)
		}
		if _, exists := c.facilities[facility.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, facility.ID)
		}
		c.facilities[facility.ID] = facility
		c.order = append(c.order, facility.ID)
	}

	return c, nil
}

// GetByID возвращает копию площадки из каталога
func (c *Catalog) GetByID(ctx context.Context, id string) (*domain.Facility, error) {
	f, ok := c.facilities[id]
	if !ok {
		return nil, ErrFacilityNotFound
	}
	return copyFacility(f), nil
}

// List возвращает все площадки каталога в порядке объявления
func (c *Catalog) List() []*domain.Facility {
	out := make([]*domain.Facility, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, copyFacility(c.facilities[id]))
	}
	return out
}

func (ff fileFacility) toDomain() (*domain.Facility, error) {
	if ff.ID == "" {
		return nil, fmt.Errorf("empty id")
	}
	if ff.Name == "" {
		return nil, fmt.Errorf("facility %q: empty name", ff.ID)
	}

	ranges := make([]domain.PriceRange, 0, len(ff.Ranges))
	for _, r := range ff.Ranges {
		start, err := types.NewTimeStringFromString(r.Start)
		if err != nil {
			return nil, fmt.Errorf("facility %q: range start: %v", ff.ID, err)
		}
		end, err := types.NewTimeStringFromString(r.End)
		if err != nil {
			return nil, fmt.Errorf("facility %q: range end: %v", ff.ID, err)
		}
		ranges = append(ranges, domain.PriceRange{
			Start:   start.String(),
			End:     end.String(),
			PerHour: decimal.NewFromFloat(r.PerHour),
		})
	}

	currency := ff.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return &domain.Facility{
		ID:       ff.ID,
		Name:     ff.Name,
		Location: ff.Location,
		Price: domain.PriceConfig{
			PerHour:  decimal.NewFromFloat(ff.PerHour),
			Ranges:   ranges,
			Discount: decimal.NewFromFloat(ff.Discount),
		},
		Currency: currency,
		Source:   domain.SourceFallback,
	}, nil
}

func copyFacility(f *domain.Facility) *domain.Facility {
	c := *f
	if f.Price.Ranges != nil {
		c.Price.Ranges = append([]domain.PriceRange(nil), f.Price.Ranges...)
	}
	return &c
}
