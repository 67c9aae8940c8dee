package payments

import config "github.com/almusafir/travel_booking/configs"

// Defaults for the installment ladder. These are configuration, not business
// rules: changing them retunes the schedule without touching any other path.
const (
	DefaultInstallmentParts = 3
	DefaultOffsetFirst      = 45
	DefaultOffsetSecond     = 30
	DefaultOffsetThird      = 15
)

type Config struct {
	GatewayKeyID     string
	GatewayKeySecret string

	// Days before the travel date each installment nominally falls due.
	OffsetsDays [3]int
	Parts       int
}

func (c Config) gatewayConfigured() bool {
	return c.GatewayKeyID != "" && c.GatewayKeySecret != ""
}

func (c Config) secretConfigured() bool {
	return c.GatewayKeySecret != ""
}

func NewConfig() Config {
	return Config{
		GatewayKeyID:     config.Config("GATEWAY_KEY_ID"),
		GatewayKeySecret: config.Config("GATEWAY_KEY_SECRET"),
		OffsetsDays:      [3]int{DefaultOffsetFirst, DefaultOffsetSecond, DefaultOffsetThird},
		Parts:            DefaultInstallmentParts,
	}
}
