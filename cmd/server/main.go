package main

import (
	"log"

	transport "socialnet/internal/transport/http"
)

func main() {
	if err := transport.Run(); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}
