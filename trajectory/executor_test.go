package trajectory

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.viam.com/test"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/mat"
)

func makeTestTrajectory(t *testing.T) *JointTrajectory {
	t.Helper()
	solved := mat.NewDense(3, 2, []float64{
		0.0, 0.1,
		0.5, 0.2,
		1.0, 0.3,
	})
	traj, err := Export(solved, []string{"joint_1", "joint_2"}, DefaultTimeStep)
	test.That(t, err, test.ShouldBeNil)
	return traj
}

// fakeController accepts one connection, reads the full trajectory transmission, and replies
// with the given terminal line.
func fakeController(t *testing.T, listener net.Listener, reply string, lines chan<- string) {
	t.Helper()
	utils.PanicCapturingGo(func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSpace(line)
			lines <- line
			if strings.HasPrefix(line, "EXEC") {
				break
			}
		}
		_, err = conn.Write([]byte(reply + "\r\n"))
		test.That(t, err, test.ShouldBeNil)
	})
}

func TestExecuteTrajectory(t *testing.T) {
	logger := golog.NewTestLogger(t)
	listener, err := net.Listen("tcp", "localhost:0")
	test.That(t, err, test.ShouldBeNil)
	defer listener.Close()
	lines := make(chan string, 16)
	fakeController(t, listener, "OK", lines)

	executor := NewClient(listener.Addr().String(), logger)
	traj := makeTestTrajectory(t)
	err = executor.ExecuteTrajectory(context.Background(), traj)
	test.That(t, err, test.ShouldBeNil)

	close(lines)
	var received []string
	for line := range lines {
		received = append(received, line)
	}
	// header, joint names, one line per point, execute command
	test.That(t, len(received), test.ShouldEqual, 6)
	test.That(t, received[0], test.ShouldContainSubstring, "TRAJ "+traj.ID.String()+" 2 3")
	test.That(t, received[1], test.ShouldEqual, "JOINTS joint_1 joint_2")
	test.That(t, received[2], test.ShouldEqual, "P 0.000000 0.000000 0.100000")
	test.That(t, received[4], test.ShouldEqual, "P 2.000000 1.000000 0.300000")
	test.That(t, received[5], test.ShouldEqual, "EXEC 1.000")
}

func TestExecuteTrajectoryControllerFailure(t *testing.T) {
	logger := golog.NewTestLogger(t)
	listener, err := net.Listen("tcp", "localhost:0")
	test.That(t, err, test.ShouldBeNil)
	defer listener.Close()
	lines := make(chan string, 16)
	fakeController(t, listener, "ERR goal aborted", lines)

	executor := NewClient(listener.Addr().String(), logger)
	err = executor.ExecuteTrajectory(context.Background(), makeTestTrajectory(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "goal aborted")
}

func TestExecuteTrajectoryConnectFailure(t *testing.T) {
	logger := golog.NewTestLogger(t)
	// grab a free port, then close it so nothing is listening there
	listener, err := net.Listen("tcp", "localhost:0")
	test.That(t, err, test.ShouldBeNil)
	address := listener.Addr().String()
	test.That(t, listener.Close(), test.ShouldBeNil)

	executor := NewClient(address, logger).(*client)
	executor.connectTimeout = 100 * time.Millisecond
	err = executor.ExecuteTrajectory(context.Background(), makeTestTrajectory(t))
	test.That(t, err, test.ShouldNotBeNil)
	var connErr *ExecutionConnectionError
	test.That(t, errors.As(err, &connErr), test.ShouldBeTrue)
	test.That(t, connErr.Address, test.ShouldEqual, address)
}

func TestExecuteTrajectoryEmpty(t *testing.T) {
	logger := golog.NewTestLogger(t)
	executor := NewClient("localhost:1", logger)
	err := executor.ExecuteTrajectory(context.Background(), &JointTrajectory{JointNames: []string{"joint_1"}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "empty")
}

func TestExecuteTrajectoryGoalDeadline(t *testing.T) {
	logger := golog.NewTestLogger(t)
	listener, err := net.Listen("tcp", "localhost:0")
	test.That(t, err, test.ShouldBeNil)
	defer listener.Close()
	// controller goes silent after accepting, never replies
	utils.PanicCapturingGo(func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		reader := bufio.NewReader(conn)
		for {
			if _, err := reader.ReadString('\n'); err != nil {
				return
			}
		}
	})

	mock := clock.NewMock()
	// pretend most of the allowed window already elapsed so the reply deadline lands quickly
	mock.Set(time.Now().Add(-2900 * time.Millisecond))
	executor := NewClient(listener.Addr().String(), logger).(*client)
	executor.clock = mock
	err = executor.ExecuteTrajectory(context.Background(), makeTestTrajectory(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "reply")
}
