package config

import (
	"mawaid-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "mawaid"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Minio: Minio{
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", "development"),
			Port:                           utils.GetEnvString("APP_PORT", ":8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "Africa/Cairo"),
			EndpointPrefix:                 utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:                utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			StatusSweepCronSpec:            utils.GetEnvString("APP_STATUS_SWEEP_CRON_SPEC", "@hourly"),
			RatingSubmitLockTTLInSeconds:   utils.GetEnvInt("APP_RATING_SUBMIT_LOCK_TTL_IN_SECONDS", 15),
			SessionExpirationTimeInMinutes: utils.GetEnvInt("APP_SESSION_EXP_TIME_IN_MINUTES", 60),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Minio: MinioInternal{
			BucketName:                      utils.GetEnvString("MINIO_BUCKET_NAME", "mawaid-uploads"),
			ProfilePictureMaxUploadSizeInMB: utils.GetEnvInt("MINIO_PROFILE_PICTURE_UPLOAD_MAX_SIZE_IN_MB", 2),
			AllowedImageFormats:             []string{".jpg", ".jpeg", ".png"},
		},
	}
}
