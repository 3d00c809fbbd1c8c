package transfer

type CacheStatus struct {
	PostsCount      int    `json:"postsCount"`
	LastUpdate      string `json:"lastUpdate"`
	ThumbnailsCount int    `json:"thumbnailsCount"`
	CacheAge        int64  `json:"cacheAge"`
	IsValid         bool   `json:"isValid"`
}

type RefreshResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	PostsCount      int    `json:"postsCount"`
	ThumbnailsCount int    `json:"thumbnailsCount"`
	LastUpdate      string `json:"lastUpdate,omitempty"`
	Serverless      bool   `json:"serverless"`
}

type DebugEnvVars struct {
	SignatureName    bool   `json:"SIGNATURE_NAME"`
	SignatureTitle   bool   `json:"SIGNATURE_TITLE"`
	SignatureCompany bool   `json:"SIGNATURE_COMPANY"`
	MaxPosts         string `json:"MAX_POSTS"`
	ThumbnailSize    string `json:"THUMBNAIL_SIZE"`
}

type DebugInfo struct {
	Environment       string       `json:"environment"`
	HasInstagramToken bool         `json:"hasInstagramToken"`
	TokenLength       int          `json:"tokenLength"`
	CacheStatus       CacheStatus  `json:"cacheStatus"`
	EnvVars           DebugEnvVars `json:"envVars"`
	Serverless        bool         `json:"serverless"`
	Timestamp         string       `json:"timestamp"`
}
