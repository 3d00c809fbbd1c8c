package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ModePersistent = "persistent"
	ModeStateless  = "stateless"

	StoreFS = "fs"
	StoreR2 = "r2"

	AspectSquare   = "square"
	AspectPortrait = "portrait"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
	Prefix     string
}

type Signature struct {
	Name    string
	Title   string
	Company string
	Email   string
	Phone   string
	Mobile  string
	Website string
	Address string
	Zip     string
	City    string
	Country string
}

type Config struct {
	Environment         string
	Port                string
	DeployMode          string
	PublicDir           string
	InstagramToken      string
	InstagramAPIBase    string
	TokenAutoRefresh    bool
	MaxPosts            int
	CacheDuration       time.Duration
	UpstreamTimeout     time.Duration
	RefreshSingleFlight bool
	ThumbnailEdge       int
	ThumbnailAspect     string
	ThumbnailDir        string
	ThumbnailStore      string
	R2                  R2
	Signature           Signature
}

func LoadConfig() *Config {
	return &Config{
		Environment:         getEnv("NODE_ENV", getEnv("APP_ENV", "development")),
		Port:                getEnv("PORT", "3000"),
		DeployMode:          getEnv("DEPLOY_MODE", ModePersistent),
		PublicDir:           getEnv("PUBLIC_DIR", "public"),
		InstagramToken:      getEnv("INSTAGRAM_TOKEN", getEnv("INSTAGRAM_ACCESS_TOKEN", "")),
		InstagramAPIBase:    strings.TrimRight(getEnv("INSTAGRAM_API_BASE", "https://graph.instagram.com"), "/"),
		TokenAutoRefresh:    getEnvBool("INSTAGRAM_TOKEN_AUTO_REFRESH", false),
		MaxPosts:            getEnvInt("MAX_POSTS", 4),
		CacheDuration:       getEnvMillis("CACHE_DURATION_MS", getEnvMillis("CACHE_DURATION", time.Hour)),
		UpstreamTimeout:     getEnvMillis("UPSTREAM_TIMEOUT_MS", 8*time.Second),
		RefreshSingleFlight: getEnvBool("REFRESH_SINGLE_FLIGHT", false),
		ThumbnailEdge:       getEnvInt("THUMBNAIL_EDGE_PX", getEnvInt("THUMBNAIL_SIZE", 80)),
		ThumbnailAspect:     getEnv("THUMBNAIL_ASPECT", AspectSquare),
		ThumbnailDir:        getEnv("THUMBNAIL_DIR", "public/thumbnails"),
		ThumbnailStore:      getEnv("THUMBNAIL_STORE", StoreFS),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  strings.TrimRight(getEnv("R2_PUBLIC_URL", ""), "/"),
			Prefix:     strings.Trim(getEnv("R2_PREFIX", "thumbnails"), "/"),
		},
		Signature: LoadSignature(),
	}
}

// LoadSignature reads the identity fields from the environment. It is also
// called per request so that identity changes show up without a restart.
func LoadSignature() Signature {
	return Signature{
		Name:    getEnv("SIGNATURE_NAME", "Your Name"),
		Title:   getEnv("SIGNATURE_TITLE", "Your Title"),
		Company: getEnv("SIGNATURE_COMPANY", "Your Company"),
		Email:   getEnv("SIGNATURE_EMAIL", "your.email@company.com"),
		Phone:   getEnv("SIGNATURE_PHONE", "+1 (555) 123-4567"),
		Mobile:  getEnv("SIGNATURE_MOBILE", "+1 (555) 987-6543"),
		Website: getEnv("SIGNATURE_WEBSITE", "https://yourwebsite.com"),
		Address: getEnv("SIGNATURE_ADDRESS", getEnv("SIGNATURE_ADRESS", "Your Address")),
		Zip:     getEnv("SIGNATURE_ZIP", "12345"),
		City:    getEnv("SIGNATURE_CITY", "Your City"),
		Country: getEnv("SIGNATURE_COUNTRY", "Your Country"),
	}
}

func (c *Config) Stateless() bool {
	return c.DeployMode == ModeStateless
}

// HasEnv reports whether key is set to a non-empty value.
func HasEnv(key string) bool {
	return os.Getenv(key) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvMillis(key string, defaultValue time.Duration) time.Duration {
	ms := getEnvInt(key, 0)
	if ms == 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}
