package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	FrontendURL        string
	AIAPIKey           string
	EmbedModel         string
	GenModel           string
	ServiceAccountPath string
	Branches           []string
	BranchFolders      map[string]string
	DataDir            string
	SyncInterval       int // minutes
	ChunkSize          int
	ChunkOverlap       int
	ScanTextThreshold  int
	TopK               int
}

// LoadConfig loads the environment variables and returns the config.
// Folder ids are read per branch from DRIVE_<BRANCH>_FOLDER_ID; a branch
// without one is kept in the list and skipped at sync time (logged).
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		AIAPIKey:           getEnv("GEMINI_API_KEY", ""),
		EmbedModel:         getEnv("EMBED_MODEL", "text-embedding-004"),
		GenModel:           getEnv("GEN_MODEL", "gemini-1.5-flash"),
		ServiceAccountPath: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", "service-account.json"),
		DataDir:            getEnv("DATA_DIR", "./acadex_data"),
		SyncInterval:       getEnvInt("SYNC_INTERVAL_MINUTES", 30),
		ChunkSize:          getEnvInt("CHUNK_SIZE", 500),
		ChunkOverlap:       getEnvInt("CHUNK_OVERLAP", 50),
		ScanTextThreshold:  getEnvInt("SCAN_TEXT_THRESHOLD", 50),
		TopK:               getEnvInt("RETRIEVAL_TOP_K", 5),
	}

	branches := strings.Split(getEnv("BRANCHES", "CSE,ECE,AIML,MECH"), ",")
	cfg.BranchFolders = make(map[string]string, len(branches))
	for _, b := range branches {
		b = strings.ToUpper(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		cfg.Branches = append(cfg.Branches, b)
		cfg.BranchFolders[b] = getEnv("DRIVE_"+b+"_FOLDER_ID", "")
	}

	if cfg.AIAPIKey == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
