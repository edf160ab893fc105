package cache

import "fmt"

const availableLotsKey = "lots:available"

func pricingKey(lotID int64) string {
	return fmt.Sprintf("pricing:lot:%d", lotID)
}
