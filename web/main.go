package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-minirt/pkg/config"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/storage"
	"github.com/df07/go-minirt/web/server"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "JSON config file")
	addr := flag.String("addr", "", "Address to serve on (default :8080)")
	scenesDir := flag.String("scenes", "scenes", "Directory of .rt scenes")
	flag.Parse()

	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv("."); err != nil {
		log.Fatalf("Error loading environment: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	cfg.Resolve(config.Flags{})

	var uploader storage.Uploader
	if cfg.S3.Enabled() {
		s3Uploader, err := storage.NewS3Uploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
		uploader = s3Uploader
	}

	// Create and start web server
	webServer := server.NewServer(cfg, uploader, renderer.NewDefaultLogger())
	webServer.SetScenesDir(*scenesDir)

	log.Printf("miniRT Web Server")
	log.Printf("POST a .rt scene to http://localhost%s/api/render", cfg.Addr)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
