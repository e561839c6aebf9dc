package constants

const Title = "Fast file splitter"

const (
	BUFFER_UNIT          = 4 * 1024         // Smallest I/O unit
	MIN_PART_SIZE        = 4 * BUFFER_UNIT  // 16K minimum part size in byte mode
	DEFAULT_BUFFER_SIZE  = 10 * 1024 * 1024 // 10M reads, shrunk to part size when smaller
	DEFAULT_WRITE_BUFFER = 256 * 1024       // 256K buffered writes
	LINE_READ_BUFFER     = 64 * 1024        // Line reader buffer
	MIN_PART_LINES       = 1                // Minimum part size in line mode
	DEFAULT_NAME_WIDTH   = 3                // Zero padding when total part count is unknown
	SNIFF_LEN            = 3072             // Bytes inspected for text detection
	MANIFEST_SUFFIX      = ".sums"          // Checksum manifest suffix
	ENV_FILE             = ".env"           // Optional defaults file
)
