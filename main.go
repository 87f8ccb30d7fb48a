package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mimiclabs/mimic/agent"
	"github.com/mimiclabs/mimic/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cli struct {
	cfg config.Config
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("storage-impl", "memory", "implementation of underline storage")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("namespace", "mimic", "namespace used in storage")
	cmd.Flags().Float64("min-similarity", 0.80, "similarity threshold for pattern detection")
	cmd.Flags().Int("min-occurrences", 3, "occurrences needed before a pattern is learned")
	cmd.Flags().String("ollama-url", "http://localhost:11434", "base url of the ollama server")
	cmd.Flags().String("ollama-model", "phi3.5:latest", "ollama model used for workflow generation")
	cmd.Flags().Int("ollama-timeout", 60, "timeout in seconds for text generation")
	cmd.Flags().Bool("headless", true, "run without screen capture and GUI automation")
	cmd.Flags().Int("mine-interval", 0, "seconds between periodic pattern mining runs, 0 disables")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg = config.Default()
	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.Pattern.MinSimilarity = viper.GetFloat64("min-similarity")
	c.cfg.Pattern.MinOccurrences = viper.GetInt("min-occurrences")
	c.cfg.Ollama.BaseUrl = viper.GetString("ollama-url")
	c.cfg.Ollama.Model = viper.GetString("ollama-model")
	c.cfg.Ollama.TimeoutSeconds = viper.GetInt("ollama-timeout")
	c.cfg.Automation.Headless = viper.GetBool("headless")
	c.cfg.Learning.MineIntervalSeconds = viper.GetInt("mine-interval")
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	a, err := agent.New(c.cfg)
	if err != nil {
		panic(err)
	}
	if err := a.Start(); err != nil {
		panic(err)
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return a.Shutdown()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "mimic",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
