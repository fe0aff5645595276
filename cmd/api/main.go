// Command api serves the job assignment HTTP API.
//
// @title Job Assignment Service API
// @version 1.0
// @description Assigns field jobs to verified partners and tracks their status.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token from /api/v1/auth/verify-otp
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
