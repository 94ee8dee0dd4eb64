package config

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/kmw248/mcmc/target"
	"github.com/spf13/viper"
	"log"
	"os"
)

type Config struct {
	Run     Run     `mapstructure:"run" validate:"required"`
	Target  Target  `mapstructure:"target" validate:"required"`
	Logging Logging `mapstructure:"logging" validate:"required"`
	Serving Serving `mapstructure:"serving" validate:"required"`
	Plot    Plot    `mapstructure:"plot" validate:"required"`
}

type Run struct {
	Steps          *int     `mapstructure:"steps" validate:"required"`
	ProposalStdDev *float64 `mapstructure:"proposalStdDev" validate:"required"`
	// InitialPosition is a pointer as a nil position means the chain
	// starts at the target's mean.
	InitialPosition *float64 `mapstructure:"initialPosition"`
	// Seed is a pointer as a nil seed means one is derived from the wall
	// clock when the run starts.
	Seed *uint64 `mapstructure:"seed"`
}

type Target struct {
	Kind  *string  `mapstructure:"kind" validate:"oneof=normal beta uniform"`
	Mu    *float64 `mapstructure:"mu"`
	Sigma *float64 `mapstructure:"sigma" validate:"required_if=Kind normal"`
	Alpha *float64 `mapstructure:"alpha" validate:"required_if=Kind beta"`
	Beta  *float64 `mapstructure:"beta" validate:"required_if=Kind beta"`
	Min   *float64 `mapstructure:"min" validate:"required_if=Kind uniform"`
	Max   *float64 `mapstructure:"max" validate:"required_if=Kind uniform"`
}

// Spec converts the section to the wire form shared by the config file,
// the HTTP API and the queue. Only the named kind's fields are copied,
// so defaults for other kinds do not leak into results.
func (t *Target) Spec() target.Spec {
	spec := target.Spec{Kind: *t.Kind}
	switch spec.Kind {
	case target.KindNormal:
		spec.Mu = *t.Mu
		spec.Sigma = *t.Sigma
	case target.KindBeta:
		spec.Alpha = *t.Alpha
		spec.Beta = *t.Beta
	case target.KindUniform:
		spec.Min = *t.Min
		spec.Max = *t.Max
	}
	return spec
}

type Logging struct {
	Driver   *string  `mapstructure:"driver" validate:"oneof=noop stdout influxdb"`
	InfluxDB InfluxDB `mapstructure:"influxdb" validate:"required_if=Driver influxdb"`
}

type InfluxDB struct {
	Host   *string `mapstructure:"host" validate:"required"`
	Token  *string `mapstructure:"token" validate:"required"`
	Org    *string `mapstructure:"org" validate:"required"`
	Bucket *string `mapstructure:"bucket" validate:"required"`
}

type Serving struct {
	Enabled    *bool   `mapstructure:"enabled" validate:"required"`
	ListenAddr *string `mapstructure:"listenAddr" validate:"required"`
	Redis      Redis   `mapstructure:"redis" validate:"required_if=Enabled true"`
	Queue      Queue   `mapstructure:"queue" validate:"required"`
	// ResultTTLSeconds bounds how long completed runs are kept. Zero
	// keeps them until Redis evicts them.
	ResultTTLSeconds *int `mapstructure:"resultTTLSeconds" validate:"required"`
}

type Redis struct {
	Addr      *string `mapstructure:"addr" validate:"required"`
	Password  *string `mapstructure:"password"`
	QueueDB   *int    `mapstructure:"queueDB" validate:"required"`
	ResultsDB *int    `mapstructure:"resultsDB" validate:"required"`
}

type Queue struct {
	Name *string `mapstructure:"name" validate:"required"`
	// Prefetch is the number of unacked jobs the worker may hold at once.
	Prefetch *int `mapstructure:"prefetch" validate:"required"`
	// PollIntervalMillis is how often the worker polls for new jobs.
	PollIntervalMillis *int `mapstructure:"pollIntervalMillis" validate:"required"`
	// TimingWindow is the number of recent runs the logged run-timing
	// percentiles are calculated over.
	TimingWindow *int `mapstructure:"timingWindow" validate:"required"`
}

type Plot struct {
	Enabled *bool   `mapstructure:"enabled" validate:"required"`
	Path    *string `mapstructure:"path" validate:"required"`
	Bins    *int    `mapstructure:"bins" validate:"required"`
}

func setDefaults() {
	viper.SetDefault("Run.Steps", 10000)
	viper.SetDefault("Run.ProposalStdDev", 1)

	viper.SetDefault("Target.Kind", "normal")
	viper.SetDefault("Target.Mu", 0)
	viper.SetDefault("Target.Sigma", 1)

	viper.SetDefault("Logging.Driver", "noop")

	viper.SetDefault("Serving.Enabled", false)
	viper.SetDefault("Serving.ListenAddr", ":8080")
	viper.SetDefault("Serving.ResultTTLSeconds", 0)
	viper.SetDefault("Serving.Redis.Addr", "localhost:6379")
	viper.SetDefault("Serving.Redis.Password", "")
	viper.SetDefault("Serving.Redis.QueueDB", 0)
	viper.SetDefault("Serving.Redis.ResultsDB", 1)
	viper.SetDefault("Serving.Queue.Name", "runs")
	viper.SetDefault("Serving.Queue.Prefetch", 1)
	viper.SetDefault("Serving.Queue.PollIntervalMillis", 100)
	viper.SetDefault("Serving.Queue.TimingWindow", 100)

	viper.SetDefault("Plot.Enabled", false)
	viper.SetDefault("Plot.Path", "out/chain.png")
	viper.SetDefault("Plot.Bins", 50)
}

func ReadConfig() *Config {
	viper.AutomaticEnv()
	setDefaults()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Fatalf("error: /app/config.yaml not found. Are you sure you have configured the ConfigMap?\nerr = %s", err)
		} else {
			log.Fatalf("error when reading config file at /app/config.yaml: err = %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("error occured while reading configuration file: err = %s", err)
	}
	validate := validator.New()
	err := validate.Struct(&config)
	if err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			log.Printf("unable to validate config: err = %s", err)
		}

		log.Printf("encountered validation errors:\n")

		for _, err := range err.(validator.ValidationErrors) {
			fmt.Printf("\t%s\n", err.Error())
		}

		fmt.Println("Check your configuration file and try again.")
		os.Exit(1)
	}

	return &config
}
