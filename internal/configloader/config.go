package configloader

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Structure to bind application parameters
type Config struct {
	LogLevel                  string `mapstructure:"LOG_LEVEL"`                    // logrus library log level to be assigned
	ApplicationName           string `mapstructure:"APP_NAME"`                     // title printed in the console banner
	ManifestPath              string `mapstructure:"MANIFEST_PATH"`                // requirements.txt or pyproject.toml
	Python                    string `mapstructure:"PYTHON"`                       // interpreter used for pip and the server
	EntryPoint                string `mapstructure:"ENTRY_POINT"`                  // script started as the server
	WorkDir                   string `mapstructure:"WORK_DIR"`                     // directory the installer and the server run in
	ServerURL                 string `mapstructure:"SERVER_URL"`                   // address printed to the operator
	HaltOnProvisioningFailure bool   `mapstructure:"HALT_ON_PROVISIONING_FAILURE"` // do not start the server if pip fails
	Hold                      bool   `mapstructure:"HOLD"`                         // wait for a keypress before exiting
	Color                     bool   `mapstructure:"COLOR"`                        // style the console output
	RunHistory                string `mapstructure:"RUN_HISTORY"`                  // SQLite file recording runs, empty to disable
}

// Initialize default parameters values
func initDefaultConfiguration(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("APP_NAME", "Equipment Tracker")
	v.SetDefault("MANIFEST_PATH", "requirements.txt")
	v.SetDefault("PYTHON", "python")
	v.SetDefault("ENTRY_POINT", "app.py")
	v.SetDefault("WORK_DIR", ".")
	v.SetDefault("SERVER_URL", "http://localhost:5000")
	v.SetDefault("HALT_ON_PROVISIONING_FAILURE", false)
	v.SetDefault("HOLD", true)
	v.SetDefault("COLOR", true)
	v.SetDefault("RUN_HISTORY", "")
}

// Load configuration from the config file and the environment
func LoadConfiguration(applicationName string, configurationFilePath string) (config Config, err error) {
	v := viper.New()
	initDefaultConfiguration(v)

	if configurationFilePath == "" {
		// Read the volume root path
		root := filepath.VolumeName(".")
		if root == "" {
			root = string(filepath.Separator)
		}

		// Set configuration named config from etc/*appName*, $HOME/.*appName* or current folders
		v.AddConfigPath(filepath.Join(root, "etc", applicationName))
		v.AddConfigPath(filepath.Join("$HOME", "."+applicationName))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	} else {
		// Set the configuration file path
		v.SetConfigFile(configurationFilePath)
	}

	// Get configuration from environment variables, if set
	v.AutomaticEnv()

	// Get configuration from configuration file, if set
	if configError := v.ReadInConfig(); configError != nil {
		if _, notFound := configError.(viper.ConfigFileNotFoundError); notFound {
			logrus.Debug(configError.Error())
		} else {
			logrus.Warn(configError.Error())
		}
	}
	err = v.Unmarshal(&config)

	return
}
