package domain

import "github.com/Skotchmaster/furniture_supply/internal/models"

// Cart is an unsaved list of order lines.
type Cart struct {
	Lines []models.OrderLine
}

func (c *Cart) AddLine(cat models.ModelCategory, item models.ModelItem, quantity int, color, description string) (models.OrderLine, error) {
	l, err := NewLine(cat, item, quantity, color, description)
	if err != nil {
		return models.OrderLine{}, err
	}
	c.Lines = append(c.Lines, l)
	return l, nil
}

// ChangeLineQuantity reports false when no line has lineID.
func (c *Cart) ChangeLineQuantity(lineID string, delta int) bool {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			AdjustQuantity(&c.Lines[i].Snapshot, delta)
			return true
		}
	}
	return false
}

func (c *Cart) RemoveLine(lineID string) bool {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Total() int64 { return LinesTotal(c.Lines) }

func (c *Cart) Clear() { c.Lines = nil }
