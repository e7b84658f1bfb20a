package devsource

import (
	"os"
	"strconv"
)

func uidString() string {
	return strconv.Itoa(os.Getuid())
}
