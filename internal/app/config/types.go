package config

type (
	InternalConfig struct {
		App   App
		JWT   JWT
		Minio MinioInternal
	}

	DriverConfig struct {
		MongoDB MongoDB
		Redis   Redis
		Minio   Minio
		Logger  Logger
	}

	App struct {
		Env                             string
		Port                            string
		Version                         string
		Timezone                        string
		EndpointPrefix                  string
		MaxRequests                     int
		ShutdownTimeout                 int
		StatusSweepCronSpec             string
		RatingSubmitLockTTLInSeconds    int
		SessionExpirationTimeInMinutes  int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	Minio struct {
		Host     string
		Port     string
		Username string
		Password string
		UseSSL   bool
	}

	MinioInternal struct {
		BucketName                      string
		ProfilePictureMaxUploadSizeInMB int
		AllowedImageFormats             []string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}
)
