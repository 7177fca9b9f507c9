package kernel

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type AppRuntime struct {
	Host string

	ServiceName           string
	ServiceVersion        string
	DeploymentEnvironment string

	DatabaseDSN    string
	DatabaseClient *gorm.DB

	JaegerEndpoint string
	Insecure       bool

	CorsOrigin string

	SeedAdmin         string
	SeedAdminPassword string

	Diagnostic *AppDiagnostic

	Context context.Context
}

// LoadConfig reads .env.<API_ENV> and builds a fresh runtime. The
// caller owns the value and hands it down into route registration;
// nothing here is memoized into a package global.
func LoadConfig() *AppRuntime {
	appEnv := os.Getenv("API_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	env, err := godotenv.Read(".env." + appEnv)
	if err != nil {
		log.Fatal(err)
	}

	return &AppRuntime{
		Host:        env["HOST"],
		DatabaseDSN: env["DATABASE_DSN"],

		ServiceName:           env["SERVICE_NAME"],
		ServiceVersion:        env["SERVICE_VERSION"],
		DeploymentEnvironment: env["DEPLOY_ENV"],

		JaegerEndpoint: env["JAEGER_ENDPOINT"],
		Insecure:       env["INSECURE"] == "true",

		CorsOrigin: env["CORS_ORIGIN"],

		SeedAdmin:         env["SEED_ADMIN"],
		SeedAdminPassword: env["SEED_ADMIN_PASSWORD"],

		Diagnostic: NewDiagnostic(env["SERVICE_NAME"]),
	}
}
