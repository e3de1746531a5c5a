package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where synergi stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string

	// LLM configuration
	LLMProvider string // SYNERGI_LLM_PROVIDER (default: openai)
	LLMAPIKey   string // SYNERGI_LLM_API_KEY
	LLMBaseURL  string // SYNERGI_LLM_BASE_URL
	LLMModel    string // SYNERGI_LLM_MODEL (default: gpt-4o-mini)
	// RouterModel is the model used for intent classification. A smaller,
	// cheaper model is fine here since the output is a single JSON object.
	RouterModel string // SYNERGI_ROUTER_MODEL (defaults to LLMModel)

	// External capability configuration
	TavilyAPIKey string // SYNERGI_TAVILY_API_KEY
	SandboxURL   string // SYNERGI_SANDBOX_URL (default: http://localhost:8194)

	// ToolLoopMaxSteps bounds the generate→tool-call→generate loop inside
	// tool-bearing agents. It is the only termination guarantee for that
	// loop, so it is configuration rather than a constant.
	ToolLoopMaxSteps int // SYNERGI_TOOL_LOOP_MAX_STEPS (default: 5)

	// MaxConcurrentTurns limits in-flight chat turns across all users.
	MaxConcurrentTurns int // SYNERGI_MAX_CONCURRENT_TURNS (default: 32)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLLMConfigured returns true if an LLM backend can be reached.
func (p *Profile) IsLLMConfigured() bool {
	return p.LLMAPIKey != "" || p.LLMBaseURL != ""
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes the profile and fills in derived defaults.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}
	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/synergi"
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	switch p.Driver {
	case "sqlite":
		if p.DSN == "" {
			p.DSN = filepath.Join(dataDir, fmt.Sprintf("synergi_%s.db", p.Mode))
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("dsn is required for postgres driver")
		}
	default:
		return errors.Errorf("unsupported database driver: %s", p.Driver)
	}

	if p.LLMModel == "" {
		p.LLMModel = "gpt-4o-mini"
	}
	if p.RouterModel == "" {
		p.RouterModel = p.LLMModel
	}
	if p.ToolLoopMaxSteps <= 0 {
		p.ToolLoopMaxSteps = 5
	}
	if p.MaxConcurrentTurns <= 0 {
		p.MaxConcurrentTurns = 32
	}
	return nil
}
