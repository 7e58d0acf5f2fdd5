package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GeofenceBaseLat     float64
	GeofenceBaseLon     float64
	GeofenceRadiusKm    float64
	GeofenceBasePincode string

	NominatimBaseURL string
	GeoAgentURL      string
}
