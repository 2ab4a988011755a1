package config

import "os"

// environ is swapped in tests.
var environ = os.Environ
