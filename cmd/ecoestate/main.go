// Command ecoestate starts the EcoEstate data API server.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/polarsquad/ecoestate/common"
	"github.com/polarsquad/ecoestate/common/model"
	"github.com/polarsquad/ecoestate/modules/digitransit"
	"github.com/polarsquad/ecoestate/modules/hsy"
	"github.com/polarsquad/ecoestate/modules/overpass"
	"github.com/polarsquad/ecoestate/modules/statfin"
	"github.com/polarsquad/ecoestate/modules/trends"
	"github.com/polarsquad/ecoestate/server"
)

const userAgent = "ecoestate/1.0"

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	statFinURL := getEnv("STATFIN_URL", "https://statfin.stat.fi/PXWeb/api/v1/en/StatFin/ashi/statfin_ashi_pxt_13mu.px")
	hsyURL := getEnv("HSY_WFS_URL", "https://kartta.hsy.fi/geoserver/wfs")
	overpassURL := getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	digitransitURL := getEnv("DIGITRANSIT_URL", "https://api.digitransit.fi/geoserver/wfs")
	digitransitKey := os.Getenv("DIGITRANSIT_SUBSCRIPTION_KEY")
	if digitransitKey == "" {
		logger.Warn("DIGITRANSIT_SUBSCRIPTION_KEY not set; walking-distance probes may be rejected")
	}

	priceCache, err := common.NewCache[[]model.PostalCodeData]("property-prices", getEnvDuration("PRICE_CACHE_TTL", 24*time.Hour))
	if err != nil {
		logger.Fatalf("price cache: %v", err)
	}
	boundaryCache, err := common.NewCache[*model.FeatureCollection]("postal-boundaries", getEnvDuration("BOUNDARY_CACHE_TTL", 7*24*time.Hour))
	if err != nil {
		logger.Fatalf("boundary cache: %v", err)
	}
	greenCache, err := common.NewCache[*model.FeatureCollection]("green-spaces", getEnvDuration("GREEN_SPACE_CACHE_TTL", 7*24*time.Hour))
	if err != nil {
		logger.Fatalf("green-space cache: %v", err)
	}
	walkingCache, err := common.NewCache[*model.WalkingZone]("walking-distance", getEnvDuration("WALKING_CACHE_TTL", 24*time.Hour))
	if err != nil {
		logger.Fatalf("walking-distance cache: %v", err)
	}

	httpClient := common.NewHttpClient(userAgent, &http.Client{})
	digitransitClient := common.NewApiKeyHttpClient(userAgent, "digitransit-subscription-key", digitransitKey, &http.Client{})

	prices := statfin.NewService(statfin.NewClient(statFinURL, httpClient), priceCache, logger)
	services := server.Services{
		Boundaries:  hsy.NewService(hsy.NewClient(hsyURL, httpClient), boundaryCache, logger),
		GreenSpaces: overpass.NewService(overpass.NewClient(overpassURL, httpClient), greenCache, logger),
		Walking:     digitransit.NewService(digitransit.NewClient(digitransitURL, digitransitClient), walkingCache, logger),
		Prices:      prices,
		Trends:      trends.NewService(prices),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := server.NewScheduler(logger)
	scheduler.Add(priceCache.Name(), 24*time.Hour, services.Prices.ClearCache)
	scheduler.Add(walkingCache.Name(), 24*time.Hour, services.Walking.ClearCache)
	scheduler.Add(boundaryCache.Name(), 7*24*time.Hour, services.Boundaries.ClearCache)
	scheduler.Add(greenCache.Name(), 7*24*time.Hour, services.GreenSpaces.ClearCache)
	scheduler.Start(ctx)

	cfg := server.Config{Port: getEnv("PORT", "3001")}
	srv := server.New(cfg, services, logger)

	logger.Infof("ecoestate API listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
