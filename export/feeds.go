package export

import (
	"fmt"

	"github.com/forecourt/go-dealers/core"
)

const (
	FeedCF247  = "cf247"
	FeedAACars = "aacars"
)

// feedSpec maps one partner feed onto CSV columns. Each row is one
// forecourt vehicle joined with its dealer's reconciled credential.
type feedSpec struct {
	name   string
	header []string
	row    func(dealer core.Dealer, credential core.ReconciledCredential, vehicle core.Vehicle) []string
}

var cf247Spec = feedSpec{
	name: FeedCF247,
	header: []string{
		"dealer_id",
		"advertisement_id",
		"company_name",
		"registration",
		"make",
		"model",
		"derivative",
		"year",
		"mileage",
		"price",
	},
	row: func(dealer core.Dealer, credential core.ReconciledCredential, vehicle core.Vehicle) []string {
		return []string{
			dealer.ID,
			credential.PrimaryID,
			companyName(dealer, credential),
			vehicle.Registration,
			vehicle.Make,
			vehicle.Model,
			vehicle.Derivative,
			fmt.Sprintf("%d", vehicle.Year),
			fmt.Sprintf("%d", vehicle.Mileage),
			formatPence(vehicle.PricePence),
		}
	},
}

var aacarsSpec = feedSpec{
	name: FeedAACars,
	header: []string{
		"advertiser_id",
		"dealer_name",
		"postcode",
		"logo_url",
		"vehicle_id",
		"registration",
		"make",
		"model",
		"year",
		"mileage",
		"price_gbp",
	},
	row: func(dealer core.Dealer, credential core.ReconciledCredential, vehicle core.Vehicle) []string {
		return []string{
			credential.PrimaryID,
			companyName(dealer, credential),
			dealer.Postcode,
			credential.CompanyLogoURL,
			vehicle.ID,
			vehicle.Registration,
			vehicle.Make,
			vehicle.Model,
			fmt.Sprintf("%d", vehicle.Year),
			fmt.Sprintf("%d", vehicle.Mileage),
			formatPence(vehicle.PricePence),
		}
	},
}

func companyName(dealer core.Dealer, credential core.ReconciledCredential) string {
	if credential.CompanyName != "" {
		return credential.CompanyName
	}
	return dealer.Name
}

// formatPence renders a pence amount as pounds with two decimal places.
func formatPence(pence int64) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("%s%d.%02d", sign, pence/100, pence%100)
}
