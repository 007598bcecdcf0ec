package qcnn

import (
	"runtime"

	"github.com/spf13/viper"
)

/*
Config carries the training hyperparameters. The defaults reproduce the
reference configuration exactly: fixed iteration budget, mini-batches of 25
drawn with replacement, Nesterov momentum at learning rate 0.01, no early
stopping.
*/
type Config struct {
	Qubits       int
	Readout      int
	Iterations   int
	BatchSize    int
	LearningRate float64
	Momentum     float64
	Seed         int64
	Workers      int
}

// NewConfig returns the reference configuration.
func NewConfig() *Config {
	return &Config{
		Qubits:       8,
		Readout:      4,
		Iterations:   100,
		BatchSize:    25,
		LearningRate: 0.01,
		Momentum:     0.9,
		Seed:         42,
		Workers:      runtime.NumCPU(),
	}
}

/*
LoadConfig layers viper over the reference defaults, so any field can be
overridden through the environment (QCNN_ITERATIONS, QCNN_SEED, ...) or an
optional qcnn.yml in the working directory.
*/
func LoadConfig() *Config {
	defaults := NewConfig()

	v := viper.New()
	v.SetDefault("qubits", defaults.Qubits)
	v.SetDefault("readout", defaults.Readout)
	v.SetDefault("iterations", defaults.Iterations)
	v.SetDefault("batch_size", defaults.BatchSize)
	v.SetDefault("learning_rate", defaults.LearningRate)
	v.SetDefault("momentum", defaults.Momentum)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("workers", defaults.Workers)

	v.SetEnvPrefix("qcnn")
	v.AutomaticEnv()

	v.SetConfigName("qcnn")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Missing config file is fine; defaults apply.

	return &Config{
		Qubits:       v.GetInt("qubits"),
		Readout:      v.GetInt("readout"),
		Iterations:   v.GetInt("iterations"),
		BatchSize:    v.GetInt("batch_size"),
		LearningRate: v.GetFloat64("learning_rate"),
		Momentum:     v.GetFloat64("momentum"),
		Seed:         v.GetInt64("seed"),
		Workers:      v.GetInt("workers"),
	}
}
