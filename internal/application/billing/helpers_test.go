package billing

import (
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

func moneyPKR(amount int64) valueobject.Money {
	return valueobject.NewMoneyPKR(decimal.NewFromInt(amount))
}
