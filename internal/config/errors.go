package config

import "github.com/ayoisaiah/tasktimer/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidFileDuration = &apperr.Error{
		Message: "invalid value for %s in config file: %v",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid --%s flag: %v",
	}

	errNegativeReminder = &apperr.Error{
		Message: "reminder must not be negative, got %v",
	}

	errInvalidBreakDuration = &apperr.Error{
		Message: "break duration must be between %v and %v, got %v",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver %q (must be bolt or sqlite)",
	}

	errUnknownLogLevel = &apperr.Error{
		Message: "unknown log level %q (must be debug, info, warn or error)",
	}

	errInvalidSound = &apperr.Error{
		Message: "notifications.sound is not usable",
	}
)
