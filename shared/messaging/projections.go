package messaging

// Projection functions between message pairs. Republished events copy the
// payload of the triggering message field by field so each mapping stays
// explicit and reviewable, and either schema can evolve without a silent
// passthrough hiding the change.

// PlacedFromSubmitted projects an OrderSubmitted into the OrderPlaced the
// saga republishes.
func PlacedFromSubmitted(m OrderSubmitted) OrderPlaced {
	return OrderPlaced{
		OrderID:    m.OrderID,
		UserID:     m.UserID,
		CurrencyID: m.CurrencyID,
		Price:      m.Price,
		OrderType:  m.OrderType,
		Quantity:   m.Quantity,
		CreatedAt:  m.CreatedAt,
	}
}

// PlacedFromPlaced republishes an OrderPlaced with lineage preserved.
func PlacedFromPlaced(m OrderPlaced) OrderPlaced {
	return OrderPlaced{
		OrderID:    m.OrderID,
		UserID:     m.UserID,
		CurrencyID: m.CurrencyID,
		Price:      m.Price,
		OrderType:  m.OrderType,
		Quantity:   m.Quantity,
		CreatedAt:  m.CreatedAt,
	}
}

// FilledFromFilled republishes an OrderFilled with lineage preserved.
func FilledFromFilled(m OrderFilled) OrderFilled {
	return OrderFilled{
		OrderID:    m.OrderID,
		UserID:     m.UserID,
		CurrencyID: m.CurrencyID,
		Price:      m.Price,
		OrderType:  m.OrderType,
		Quantity:   m.Quantity,
		CreatedAt:  m.CreatedAt,
	}
}

// CancelledFromCancelled republishes an OrderCancelled with lineage preserved.
func CancelledFromCancelled(m OrderCancelled) OrderCancelled {
	return OrderCancelled{
		OrderID:    m.OrderID,
		UserID:     m.UserID,
		CurrencyID: m.CurrencyID,
		Price:      m.Price,
		OrderType:  m.OrderType,
		Quantity:   m.Quantity,
		CreatedAt:  m.CreatedAt,
	}
}

// CancelledFromExpired projects the scheduled OrderExpired delivery into the
// OrderCancelled the saga publishes when the order times out.
func CancelledFromExpired(m OrderExpired) OrderCancelled {
	return OrderCancelled{
		OrderID:    m.OrderID,
		UserID:     m.UserID,
		CurrencyID: m.CurrencyID,
		Price:      m.Price,
		OrderType:  m.OrderType,
		Quantity:   m.Quantity,
		CreatedAt:  m.CreatedAt,
	}
}

// ExpiredFromPlaced builds the OrderExpired payload the saga schedules when
// an order transitions to placed.
func ExpiredFromPlaced(m OrderPlaced) OrderExpired {
	return OrderExpired{
		OrderID:    m.OrderID,
		UserID:     m.UserID,
		CurrencyID: m.CurrencyID,
		Price:      m.Price,
		OrderType:  m.OrderType,
		Quantity:   m.Quantity,
		CreatedAt:  m.CreatedAt,
	}
}
