package errors

// Error message constants for the use-splitter application
const (
	// File processing errors
	ErrMsgFailedToReadFile  = "failed to read file"
	ErrMsgFailedToFixFile   = "failed to fix file"
	ErrMsgFailedToWriteFile = "failed to write file"
	ErrMsgFailedToStatFile  = "failed to stat file"

	// Directory processing errors
	ErrMsgFailedToCheckPath    = "failed to check path"
	ErrMsgFailedToFindPHPFiles = "failed to find PHP files in directory"
	ErrMsgFilesFailedToProcess = "%d files failed to process"
	ErrMsgFilesNeedFixing      = "%d files need fixing"

	// Configuration errors
	ErrMsgFailedToLoadConfig  = "failed to load config"
	ErrMsgFailedToParseConfig = "failed to parse TOML"
	ErrMsgUnknownConfigKeys   = "unknown config keys"
	ErrMsgInvalidJobs         = "jobs must not be negative"
	ErrMsgInvalidColorMode    = "invalid --color value %q (want auto, on or off)"
	ErrMsgFailedToSelectRules = "failed to select rules"

	// Cache errors
	ErrMsgFailedToLoadCache = "failed to load cache"
	ErrMsgFailedToSaveCache = "failed to save cache"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files or specify a single file for stdout output."
	InfoMsgNoPHPFilesFound             = "No PHP files found in directory: %s"
	InfoMsgFoundPHPFiles               = "Found %d PHP files in directory: %s"
	InfoMsgFixedFile                   = "Fixed: %s"
	InfoMsgWouldFixFile                = "Would fix: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgFixedCount                  = ", %d fixed"
	InfoMsgCachedCount                 = ", %d unchanged since last run"
	InfoMsgErrorCount                  = ", %d files had errors"
)
