package alert

import "github.com/fekuna/omnipos-inventory-service/internal/model"

// Evaluation is the threshold verdict for one post-mutation snapshot.
type Evaluation struct {
	Available         int
	Raise             []model.AlertType
	Resolve           []model.AlertType
	SuggestedQuantity int
}

// Empty reports whether the evaluation asks for no writes at all.
func (e Evaluation) Empty() bool {
	return len(e.Raise) == 0 && len(e.Resolve) == 0 && e.SuggestedQuantity == 0
}

// Raises reports whether t is among the alert types to raise.
func (e Evaluation) Raises(t model.AlertType) bool {
	for _, r := range e.Raise {
		if r == t {
			return true
		}
	}
	return false
}

// EvaluateDepletion runs after a mutation that can only lower stock.
func EvaluateDepletion(inv model.Inventory) Evaluation {
	ev := Evaluation{Available: inv.Available()}
	if ev.Available > inv.ReorderLevel {
		return ev
	}

	ev.Raise = append(ev.Raise, model.AlertLowStock)
	if ev.Available <= 0 {
		ev.Raise = append(ev.Raise, model.AlertOutOfStock)
	}
	if gap := inv.MaxStockLevel - inv.Quantity; gap > 0 {
		ev.SuggestedQuantity = gap
	}
	return ev
}

// EvaluateRestock runs after a mutation that can only raise stock.
func EvaluateRestock(inv model.Inventory) Evaluation {
	ev := Evaluation{Available: inv.Available()}
	if inv.Quantity > inv.ReorderLevel {
		ev.Resolve = append(ev.Resolve, model.AlertLowStock, model.AlertOutOfStock)
	}
	if inv.Quantity > inv.MaxStockLevel {
		ev.Raise = append(ev.Raise, model.AlertOverstock)
	}
	return ev
}
