package i18n

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
)

var (
	mu   sync.RWMutex
	lang string
)

// Supported lists the languages with translation tables. English is the key
// language and needs no table.
var Supported = []string{"en", "pt", "es"}

var translations = map[string]map[string]string{
	"Breathe your Break": {
		"pt": "Respire na sua Pausa",
		"es": "Respira en tu Pausa",
	},
	"Inhale": {
		"pt": "Inspire",
		"es": "Inhala",
	},
	"Hold": {
		"pt": "Segure",
		"es": "Sostén",
	},
	"Exhale": {
		"pt": "Expire",
		"es": "Exhala",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
	},
	"Stop": {
		"pt": "Parar",
		"es": "Parar",
	},
	"Find your calm 🌿": {
		"pt": "Encontre sua calma 🌿",
		"es": "Encuentra tu calma 🌿",
	},
	"Help": {
		"pt": "Ajuda",
		"es": "Ayuda",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("BREATHE_LANG")); forcedLang != "" {
		log.Printf("BREATHE_LANG is set to: '%s'", forcedLang)
		lang = Normalize(forcedLang)
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		log.Printf("Detected user locale: %s", userLocales[0])
		lang = Normalize(userLocales[0])
	} else {
		log.Println("No user locale detected, defaulting to english")
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

// Normalize maps a locale such as "pt_BR" or "es-419" onto a supported
// language, falling back to english.
func Normalize(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	for _, s := range Supported {
		if strings.HasPrefix(l, s) {
			return s
		}
	}
	return "en"
}

// SetLang overrides the detected language. BREATHE_LANG still wins because it
// is meant for forcing a language from the shell.
func SetLang(l string) {
	if l == "" || os.Getenv("BREATHE_LANG") != "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	lang = Normalize(l)
}

func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}
