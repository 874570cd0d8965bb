package main

//go:generate swag init

import "github.com/bimmills/portal/cmd"

// @title           BIM Mills Portal API
// @version         1.0.0
// @description     Orders, invoices, sales ledger, vendors and catalogue for BIM Mills.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	cmd.Execute()
}
