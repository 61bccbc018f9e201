package main

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"ocdb/config"
	"ocdb/database"
	"ocdb/extraction"
	"ocdb/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
		cfg = config.GetConfig()
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := database.InitSchema(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	venueStore, err := store.Load(dbConn)
	if err != nil {
		log.Fatalf("Failed to load venue store: %v", err)
	}
	log.Printf("Venue store loaded: %d record(s).", venueStore.Len())

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		log.Println("WARN: ANTHROPIC_API_KEY is not set. Screenshot ingest will fail until it is configured.")
	}
	extractor := extraction.NewExtractor(apiKey, cfg.AnthropicModel, cfg.OriginAddress)

	appTemplate, err := template.ParseFS(os.DirFS("static"), "index.html")
	if err != nil {
		log.Fatalf("Failed to parse index.html: %v", err)
	}
	log.Println("HTML templates loaded and parsed.")

	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir("./static"))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := appTemplate.ExecuteTemplate(w, "index.html", nil); err != nil {
			log.Printf("Error executing main template: %v", err)
		}
	})

	SetupRoutes(mux, venueStore, extractor)

	addr := ":" + cfg.ListenPort
	log.Printf("Starting server on http://localhost%s", addr)

	if !cfg.DisableBrowser {
		openBrowser("http://localhost" + addr)
	}

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
