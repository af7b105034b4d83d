package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"ncs-job-agent/internal/dashboard"
)

func main() {
	csvPath := flag.String("csv", defaultEnv("NCS_CSV_PATH", "ncs_job_results.csv"), "path to the results CSV")
	addr := flag.String("addr", defaultEnv("NCS_DASHBOARD_ADDR", ":8080"), "listen address")
	flag.Parse()

	srv := dashboard.NewServer(*csvPath)
	log.Printf("📊 Dashboard serving %s on %s", *csvPath, *addr)
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.Fatalf("❌ Dashboard server stopped: %v", err)
	}
}

func defaultEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
