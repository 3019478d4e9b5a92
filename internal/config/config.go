package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration. It is built once at startup and
// passed by value into component constructors; nothing reads it globally.
type Config struct {
	Paths           PathsConfig    `mapstructure:"paths"`
	Server          ServerConfig   `mapstructure:"server"`
	Categories      []CategoryRule `mapstructure:"categories"`
	DepositTriggers []string       `mapstructure:"deposit_triggers"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	DataDir   string `mapstructure:"data_dir"`
	LedgerCSV string `mapstructure:"ledger_csv"`
	IndexDir  string `mapstructure:"index_dir"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// CategoryRule maps a category name to the keywords that select it.
// Rules are ordered: when several categories share a keyword, the first
// rule in the slice wins.
type CategoryRule struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// DefaultCategories is the built-in category mapping, used when the config
// file does not define one.
func DefaultCategories() []CategoryRule {
	return []CategoryRule{
		{Name: "groceries", Keywords: []string{"grocery", "supermarket", "market", "mart", "foods"}},
		{Name: "dining", Keywords: []string{"restaurant", "cafe", "coffee", "pizza", "burger", "diner"}},
		{Name: "transport", Keywords: []string{"uber", "lyft", "taxi", "transit", "gas", "fuel", "parking"}},
		{Name: "shopping", Keywords: []string{"amazon", "walmart", "target", "store", "shop"}},
		{Name: "entertainment", Keywords: []string{"netflix", "spotify", "cinema", "movie", "game"}},
		{Name: "utilities", Keywords: []string{"electric", "hydro", "water", "internet", "phone", "mobile"}},
		{Name: "health", Keywords: []string{"pharmacy", "drug", "dental", "clinic", "gym", "fitness"}},
		{Name: "travel", Keywords: []string{"airline", "hotel", "airbnb", "flight"}},
		{Name: "income", Keywords: []string{"payroll", "salary", "transferfrom", "deposit"}},
	}
}

// DefaultDepositTriggers are the tokens whose presence on a statement line
// marks the amount as incoming funds.
func DefaultDepositTriggers() []string {
	return []string{"Deposit", "MB-Transferfrom"}
}

// Load reads configuration from file and env. Env var overrides use prefix
// STATEMENT_INSIGHTS_. A missing config file is fine; a malformed one is not.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("paths.data_dir", "data")
	v.SetDefault("paths.ledger_csv", filepath.Join("processed", "transactions.csv"))
	v.SetDefault("paths.index_dir", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("deposit_triggers", DefaultDepositTriggers())

	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("STATEMENT_INSIGHTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			// no config file present, run with defaults
		} else {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories()
	}
	if len(c.DepositTriggers) == 0 {
		c.DepositTriggers = DefaultDepositTriggers()
	}
	return c, nil
}
