package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigFile путь к .env файлу и указатель на структуру конфигурации.
// Структуры могут содержать теги envconfig.
type ConfigFile struct {
	// Путь к файлу. Пустой путь - только переменные окружения.
	Path string
	// Optional - отсутствие файла не является ошибкой.
	Optional bool
	// Конфигурация - указатель на структуру.
	Config interface{}
}

// LoadConfigFiles загружает несколько .env файлов и анмаршалит переменные окружения в структуры.
// Переменные, уже заданные в окружении, файлом не перезаписываются.
func LoadConfigFiles(configFiles ...*ConfigFile) error {
	for _, configFile := range configFiles {
		if configFile.Path != "" {
			err := godotenv.Load(configFile.Path)
			if err != nil && !(configFile.Optional && errors.Is(err, fs.ErrNotExist)) {
				return err
			}
		}

		if err := envconfig.Process("", configFile.Config); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfigs анмаршалит переменные окружения в структуры.
//   - config - ссылки на структуры с тегами envconfig.
func LoadConfigs(config ...interface{}) error {
	for _, cfg := range config {
		if err := envconfig.Process("", cfg); err != nil {
			return err
		}
	}
	return nil
}
