package integration_test

import "time"

const (
	dbName         = "concert_reservation"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"

	// User related constants
	TestUserId       = 1
	TestUsername     = "alice"
	TestUserEmail    = "alice@example.com"
	TestUserPassword = "Test123!@#"

	// Concert related constants
	TestConcertId = 1
	TestArtist    = "The Test Tones"
	TestVenue     = "Integration Hall"
)

var TestPerformanceDate = time.Date(2026, 10, 12, 20, 0, 0, 0, time.UTC)
