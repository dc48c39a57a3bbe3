package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"weread2notion/internal/cookie"
	"weread2notion/internal/platform/weread"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	var (
		force    = pflag.Bool("force", false, "fetch a new cookie even if the saved one is still valid")
		status   = pflag.Bool("status", false, "show whether a valid cookie is saved")
		headless = pflag.Bool("headless", false, "run Chrome without a window")
		timeout  = pflag.Duration("timeout", 5*time.Minute, "how long to wait for the login")
	)
	pflag.Parse()

	_ = godotenv.Load(".env.local")

	store := cookie.NewStore(getEnv("WEREAD_COOKIE_FILE", cookie.DefaultFile))

	if *status {
		s, err := store.Load()
		if err != nil {
			fmt.Printf("no valid cookie in %s: %v\n", store.Path(), err)
			os.Exit(1)
		}
		fmt.Printf("valid cookie in %s (%d chars)\n", store.Path(), len(s))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	manager := cookie.NewManager(store, cookie.BrowserFetcher{Headless: *headless, Timeout: *timeout})
	s, err := manager.Cookie(ctx, *force)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Fatal("cancelled")
		}
		log.Fatalf("get cookie: %v", err)
	}
	fmt.Printf("cookie saved to %s\n", store.Path())

	client, err := weread.NewClient(s, weread.Options{UserAgent: getEnv("WEREAD_USER_AGENT", weread.DefaultUserAgent)})
	if err != nil {
		log.Fatalf("weread client: %v", err)
	}
	defer client.Close()
	if err := client.Connect(ctx); err != nil {
		log.Fatalf("cookie rejected by weread: %v", err)
	}
	fmt.Println("cookie accepted by weread")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
