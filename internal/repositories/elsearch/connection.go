package elsearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
)

// Config do cliente Elasticsearch, montada a partir das Settings
type Config struct {
	Addresses []string
	Username  string
	Password  string

	// Connection settings
	MaxRetries    int
	RetryBackoff  time.Duration
	Timeout       time.Duration
	EnableLogging bool

	// TLS settings
	InsecureSkipVerify bool

	IndexName string
	// SynonymsFile no formato do Elasticsearch ("a, b, c" por linha); vazio = sem sinônimos
	SynonymsFile string
}

// Client envolve o cliente oficial e o índice de denúncias
type Client struct {
	ES     *elasticsearch.Client
	config *Config
}

// NewClient creates a new Elasticsearch client with the provided configuration
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("configuration cannot be nil")
	}
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("at least one elasticsearch address is required")
	}
	if cfg.IndexName == "" {
		cfg.IndexName = "denuncias"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,

		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
		RetryBackoff: func(i int) time.Duration {
			return cfg.RetryBackoff * time.Duration(i)
		},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: cfg.Timeout,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
			},
		},
		EnableMetrics:     cfg.EnableLogging,
		EnableDebugLogger: cfg.EnableLogging,
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	client := &Client{
		ES:     es,
		config: cfg,
	}

	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}

	return client, nil
}

// IndexName retorna o índice de denúncias
func (c *Client) IndexName() string {
	return c.config.IndexName
}

// Ping tests the connection to Elasticsearch
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.ES.Ping(c.ES.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping failed with status: %s", res.Status())
	}
	return nil
}

// EnsureIndex cria o índice de denúncias se ele ainda não existir, com os sinônimos do SynonymsFile
func (c *Client) EnsureIndex(ctx context.Context) error {
	exists, err := c.IndexExists(ctx, c.config.IndexName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	var synonyms []string
	if c.config.SynonymsFile != "" {
		synonyms, err = ReadSynonymsFile(c.config.SynonymsFile)
		if err != nil {
			return err
		}
	}

	mapping, err := buildDenunciasMapping(synonyms)
	if err != nil {
		return err
	}
	return c.CreateIndex(ctx, c.config.IndexName, mapping)
}

// CreateIndex creates an index with optional mapping
func (c *Client) CreateIndex(ctx context.Context, indexName string, mapping []byte) error {
	res, err := c.ES.Indices.Create(
		indexName,
		c.ES.Indices.Create.WithContext(ctx),
		c.ES.Indices.Create.WithBody(bytes.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", indexName, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to create index %s: %s", indexName, res.String())
	}
	return nil
}

// IndexExists checks if an index exists
func (c *Client) IndexExists(ctx context.Context, indexName string) (bool, error) {
	res, err := c.ES.Indices.Exists([]string{indexName}, c.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, err
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK, nil
}
