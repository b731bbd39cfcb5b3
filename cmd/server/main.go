// Package main is the entry point for the local-first explorer server.
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/thatbeautifuldream/local-first-explorer/internal/config"
	"github.com/thatbeautifuldream/local-first-explorer/internal/explorer"
	lfs "github.com/thatbeautifuldream/local-first-explorer/internal/fs"
	"github.com/thatbeautifuldream/local-first-explorer/internal/handler"
	"github.com/thatbeautifuldream/local-first-explorer/internal/watcher"
)

//go:embed web/*
var webFS embed.FS

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Local-First Explorer")
	log.Printf("Config file: %s", cfg.GetConfigFilePath())
	log.Printf("Server starting at: http://localhost:%d", cfg.Port)

	// Application state and handlers
	store := explorer.NewStore()
	explorerHandler := handler.NewExplorerHandler(cfg, store)
	notifier := handler.NewNotifier()
	store.Subscribe(notifier.OnStateChange)

	// Setup file watcher if enabled
	if cfg.Watch {
		w, err := watcher.New(cfg, store)
		if err != nil {
			log.Printf("Warning: failed to create file watcher: %v", err)
		} else {
			explorerHandler.OnImport(func(dir *lfs.Directory) {
				if err := w.Rewatch(dir); err != nil {
					log.Printf("Warning: failed to watch %s: %v", dir.Root(), err)
				}
			})
			if err := w.Start(); err != nil {
				log.Printf("Warning: failed to start file watcher: %v", err)
			}
			defer func() { _ = w.Stop() }()
			log.Printf("File watcher enabled")
		}
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// API routes
	api := r.Group("/api")
	{
		api.GET("/capability", explorerHandler.GetCapability)
		api.POST("/import", explorerHandler.ImportFolder)
		api.GET("/tree", explorerHandler.GetTree)
		api.GET("/metadata/*path", explorerHandler.GetMetadata)
		api.POST("/select", explorerHandler.SelectEntry)
		api.GET("/selection", explorerHandler.GetSelection)
		api.GET("/ws", notifier.HandleWS)
	}

	// Serve embedded static files
	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		log.Fatalf("Failed to load web assets: %v", err)
	}
	r.NoRoute(gin.WrapH(http.FileServer(http.FS(webContent))))

	// Open browser if requested
	if cfg.Open {
		go openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Port))
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default: // linux, etc.
		cmd = "xdg-open"
		args = []string{url}
	}

	_ = exec.Command(cmd, args...).Start()
}
