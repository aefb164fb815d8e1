package main

import (
	"delivery-order-service/cmd/deliveryctl/cmd"
)

func main() {
	cmd.Execute()
}
