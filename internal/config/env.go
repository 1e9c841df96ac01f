package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// LoadEnv loads environment variables into the config struct.
// Each settings section is walked and fields carrying an `env` tag are
// overwritten when the variable is present.
func LoadEnv(config *AppConfig) error {
	log.Debug().Msg("Loading environment variables")

	sections := []interface{}{
		&config.App,
		&config.Database,
		&config.Server,
		&config.JWT,
		&config.PasswordHash,
		&config.Reset,
		&config.Email,
		&config.Storage,
		&config.Cache,
		&config.Logging,
		&config.CORS,
	}

	for _, section := range sections {
		if err := processStructEnv(section); err != nil {
			return err
		}
	}

	log.Debug().
		Str("APP_ENV", os.Getenv("APP_ENV")).
		Str("DB_HOST", os.Getenv("DB_HOST")).
		Str("DB_DRIVER", os.Getenv("DB_DRIVER")).
		Msg("Environment variables loaded")

	return nil
}

// processStructEnv processes environment variables for a struct
func processStructEnv(s interface{}) error {
	val := reflect.ValueOf(s).Elem()
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		envValue, exists := os.LookupEnv(envName)
		if !exists {
			continue
		}

		if err := setField(fieldVal, field.Type, envName, envValue); err != nil {
			return err
		}
	}

	return nil
}

func setField(fieldVal reflect.Value, fieldType reflect.Type, envName, envValue string) error {
	switch fieldVal.Kind() {
	case reflect.String:
		fieldVal.SetString(envValue)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fieldType == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(envValue)
			if err != nil {
				return fmt.Errorf("invalid duration for %s: %w", envName, err)
			}
			fieldVal.Set(reflect.ValueOf(duration))
		} else {
			intValue, err := strconv.ParseInt(envValue, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer for %s: %w", envName, err)
			}
			fieldVal.SetInt(intValue)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(envValue, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer for %s: %w", envName, err)
		}
		fieldVal.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %w", envName, err)
		}
		fieldVal.SetBool(boolValue)

	case reflect.Ptr:
		// Optional values such as *bool distinguish "unset" from "false".
		elem := reflect.New(fieldType.Elem())
		if err := setField(elem.Elem(), fieldType.Elem(), envName, envValue); err != nil {
			return err
		}
		fieldVal.Set(elem)

	case reflect.Slice:
		if fieldVal.Type().Elem().Kind() == reflect.String {
			values := strings.Split(envValue, ",")
			for i, v := range values {
				values[i] = strings.TrimSpace(v)
			}
			fieldVal.Set(reflect.ValueOf(values))
		}
	}

	return nil
}
