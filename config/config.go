package config

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type Config struct {
	RedisConfig RedisStorageConfig
	HttpPort    int
	StorageType StorageType
	Pattern     PatternConfig
	Generation  GenerationConfig
	Ollama      OllamaConfig
	Automation  AutomationConfig
	Learning    LearningConfig
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
}

// PatternConfig controls similarity clustering across sessions.
type PatternConfig struct {
	MinSimilarity  float64
	MinOccurrences int
}

type GenerationConfig struct {
	MaxTimelineLength int
	OcrTextLimit      int
	TranscriptLimit   int
}

type OllamaConfig struct {
	BaseUrl        string
	Model          string
	TimeoutSeconds int
	MaxRetries     int
}

type AutomationConfig struct {
	Headless             bool
	PausePollMs          int
	ActionTimeoutSeconds int
	// PixelDiffThreshold is the per-pixel grayscale delta above which a
	// pixel counts as changed; ChangeRatio is the fraction of changed
	// pixels separating "changed" from "unchanged" screens.
	PixelDiffThreshold int
	ChangeRatio        float64
}

type LearningConfig struct {
	WorkerCapacity      int
	MineIntervalSeconds int
}

func Default() Config {
	return Config{
		HttpPort:    8080,
		StorageType: STORAGE_TYPE_INMEM,
		RedisConfig: RedisStorageConfig{
			Addrs:     []string{"localhost:6379"},
			Namespace: "mimic",
		},
		Pattern: PatternConfig{
			MinSimilarity:  0.80,
			MinOccurrences: 3,
		},
		Generation: GenerationConfig{
			MaxTimelineLength: 1000,
			OcrTextLimit:      100,
			TranscriptLimit:   500,
		},
		Ollama: OllamaConfig{
			BaseUrl:        "http://localhost:11434",
			Model:          "phi3.5:latest",
			TimeoutSeconds: 60,
			MaxRetries:     3,
		},
		Automation: AutomationConfig{
			Headless:             true,
			PausePollMs:          100,
			ActionTimeoutSeconds: 10,
			PixelDiffThreshold:   10,
			ChangeRatio:          0.01,
		},
		Learning: LearningConfig{
			WorkerCapacity:      64,
			MineIntervalSeconds: 0,
		},
	}
}
