// Command quotaconv converts a human-readable quota phrase into token
// bucket parameters.
//
// Usage:
//
//	$ quotaconv "1000 messages per month"
//	capacity=1000  rate_per_sec=0.0003858024691358025
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/austinerwin/quotarate"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s \"<quota string>\"\n", os.Args[0])
		os.Exit(1)
	}

	params, err := quotarate.Parse(strings.Join(os.Args[1:], " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	capacity := "unlimited"
	if !params.Unlimited {
		capacity = strconv.Itoa(params.Capacity)
	}

	// Shortest decimal that round-trips the float, trailing zeros trimmed.
	rate := strconv.FormatFloat(params.RatePerSec, 'f', -1, 64)
	fmt.Printf("capacity=%s  rate_per_sec=%s\n", capacity, rate)
}
