package models

// Prize is one entry of the prize catalog. Weight is relative: the catalog is
// normalized before a draw, so weights need not sum to 1.
type Prize struct {
	Label  string  `mapstructure:"label" bson:"label" json:"label"`
	Weight float64 `mapstructure:"weight" bson:"weight" json:"weight"`
}

var defaultPrizeLabels = []string{
	"Desconto de 50%",
	"Frete Grátis",
	"Produto Grátis",
	"Cashback 20%",
	"Vale-compra R$ 100",
	"Desconto de 30%",
	"Brinde Especial",
	"Cupom R$ 50",
}

// DefaultPrizeLabels returns the catalog served when none is configured.
func DefaultPrizeLabels() []string {
	return append([]string(nil), defaultPrizeLabels...)
}

// DefaultPrizes returns the default catalog with equal weights.
func DefaultPrizes() []Prize {
	prizes := make([]Prize, len(defaultPrizeLabels))
	for i, label := range defaultPrizeLabels {
		prizes[i] = Prize{Label: label, Weight: 1}
	}
	return prizes
}
