package masker

import (
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LogConfigs логгирует структуры, в том числе вложенные.
// Если поле помечено тегом masked, то оно будет логгироваться замаскированным.
// Каждая структура логируется отдельной строкой. Вложенные поля не логгируются отдельно.
func LogConfigs(logger *zap.Logger, configs ...interface{}) error {
	for _, config := range configs {
		v := reflect.ValueOf(config)
		t := reflect.TypeOf(config)

		// Если config не указатель на структуру, то ошибка
		if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
			return ErrConfigNotPointer
		}
		v = v.Elem()
		t = t.Elem()

		logger.Info("Config", zap.Any(t.Name(), maskStructFields(v, t)))
	}
	return nil
}

// maskStructFields маскирует поля структуры, если они отмечены тегом masked
func maskStructFields(v reflect.Value, t reflect.Type) map[string]interface{} {
	result := make(map[string]interface{})
	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		if !fieldType.IsExported() {
			continue
		}
		result[fieldType.Name] = maskValue(v.Field(i), fieldType.Tag.Get("masked") == "true")
	}
	return result
}

func maskValue(field reflect.Value, masked bool) interface{} {
	if field.Type() == durationType {
		return time.Duration(field.Int()).String()
	}

	switch field.Kind() {
	// Вложенная структура обрабатывается рекурсивно
	case reflect.Struct:
		return maskStructFields(field, field.Type())

	case reflect.Ptr:
		if field.IsNil() {
			return nil
		}
		return maskValue(field.Elem(), masked)

	case reflect.String:
		if masked {
			return maskSensitiveData(field.String())
		}
		return field.String()

	// Срезы маскируются поэлементно
	case reflect.Slice:
		if !masked {
			return field.Interface()
		}
		out := make([]string, field.Len())
		for i := range out {
			out[i] = maskSensitiveData(fmt.Sprint(field.Index(i).Interface()))
		}
		return out

	default:
		if masked {
			return maskSensitiveData(fmt.Sprint(field.Interface()))
		}
		return field.Interface()
	}
}

// maskSensitiveData маскирует строку, оставляя только первый и последний символы.
// Если строка короче 2 символов, то возвращается "****".
func maskSensitiveData(data string) string {
	if len(data) <= 2 {
		return "****"
	}
	return string(data[0]) + "****" + string(data[len(data)-1])
}
