package scheduler_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/huddlehq/huddle/pkg/schedsdk"
)

/*
 * Common constants and helper functions for scheduler end-to-end tests.
 * This includes container setup, seeding helpers, and assertions.
 */

const testImageName = "huddle-scheduler-test:latest"

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Scheduler Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Scheduler Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/scheduler/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Image might not exist
}

// setupSchedulerContainer starts the scheduler in a container and returns the
// base URL. Rate limits are raised so rapid test requests don't trip them.
func setupSchedulerContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"SCHED_DATABASE_FILE": "/tmp/scheduler.db",
			"SCHED_NOTIFIER":      "log",
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
			// Raised limits so rapid test requests don't trip them
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// setupSchedulerContainerWithDefaultRateLimits starts the scheduler with the
// production rate limits. Only the rate limiting tests should use this.
func setupSchedulerContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"SCHED_DATABASE_FILE": "/tmp/scheduler.db",
			"SCHED_NOTIFIER":      "log",
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// tomorrowAt returns a UTC timestamp a day out, truncated to seconds so wire
// round-trips compare cleanly.
func tomorrowAt(hour int) time.Time {
	return time.Now().UTC().Add(24 * time.Hour).
		Truncate(24 * time.Hour).
		Add(time.Duration(hour) * time.Hour)
}

// createMeeting schedules a meeting and asserts it came back scheduled.
func createMeeting(t *testing.T, client *schedsdk.SDKClient, title string, start, end time.Time) *schedsdk.MeetingResponse {
	t.Helper()

	meeting, err := client.CreateMeeting(t.Context(), schedsdk.MeetingRequest{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		OwnerID:   "usr_e2e",
	})
	require.NoError(t, err)
	require.NotNil(t, meeting)
	require.NotEmpty(t, meeting.ID)
	require.Equal(t, "scheduled", meeting.Status)

	return meeting
}

// invite adds a participant and asserts the invited state.
func invite(t *testing.T, client *schedsdk.SDKClient, meetingID, email string) *schedsdk.ParticipantResponse {
	t.Helper()

	participant, err := client.AddParticipant(t.Context(), meetingID, schedsdk.ParticipantRequest{
		Email: email,
	})
	require.NoError(t, err)
	require.NotNil(t, participant)
	require.Equal(t, "invited", participant.Status)

	return participant
}

// assertAPIError verifies err is an APIError with the given status and code.
func assertAPIError(t *testing.T, err error, statusCode int, code string) {
	t.Helper()

	require.Error(t, err)
	var apiErr *schedsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
