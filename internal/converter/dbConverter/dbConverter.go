package dbConverter

import (
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/model/dbModel"
)

func ConvertPosition(dbPosition dbModel.Position) model.Position {
	return model.Position{
		ID:            dbPosition.ID.String(),
		OwnerID:       dbPosition.OwnerID.String(),
		Symbol:        dbPosition.Symbol,
		Name:          dbPosition.Name,
		Currency:      dbPosition.Currency,
		Quantity:      dbPosition.Quantity,
		PurchasePrice: dbPosition.PurchasePrice,
		PurchaseDate:  dbPosition.PurchaseDate,
	}
}

// ConvertDividend keeps unknown stored frequencies as is, they count as annual.
func ConvertDividend(dbDividend dbModel.Dividend) model.DividendRecord {
	return model.DividendRecord{
		ID:          dbDividend.ID.String(),
		OwnerID:     dbDividend.OwnerID.String(),
		StockSymbol: dbDividend.StockSymbol,
		StockName:   dbDividend.StockName,
		Amount:      dbDividend.Amount,
		ExDate:      dbDividend.ExDate,
		PaymentDate: dbDividend.PaymentDate,
		Frequency:   model.Frequency(dbDividend.Frequency),
		Currency:    dbDividend.Currency,
	}
}

func ConvertUser(dbUser dbModel.User) model.User {
	return model.User{
		ID:           dbUser.ID.String(),
		Email:        dbUser.Email,
		Name:         dbUser.Name,
		PasswordHash: dbUser.PasswordHash,
		CreatedAt:    dbUser.CreatedAt,
	}
}
