package cmd

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	TelegramBotToken  string
	DispatchRetrySpec string

	// Dispatch tuning. Empty values fall back to the service defaults.
	PickupProximityKm         string
	DeliverProximityKm        string
	AutoCompleteGraceSeconds  string
	DefaultPreparationMinutes string
	DefaultBranchLat          string
	DefaultBranchLon          string
}
