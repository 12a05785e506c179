package trajectory

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

const (
	// DefaultConnectTimeout bounds how long the executor waits to reach the controller.
	DefaultConnectTimeout = 2 * time.Second
	// DefaultGoalTimeTolerance is how far past the trajectory's nominal duration the controller
	// may run before the executor reports failure.
	DefaultGoalTimeTolerance = time.Second
)

// ExecutionConnectionError indicates the execution controller could not be reached within the
// connect timeout. The execution step fails, but the core pipeline is not crashed.
type ExecutionConnectionError struct {
	Address string
	Err     error
}

func (e *ExecutionConnectionError) Error() string {
	return fmt.Sprintf("could not connect to trajectory controller at %s: %s", e.Address, e.Err)
}

func (e *ExecutionConnectionError) Unwrap() error {
	return e.Err
}

// Executor streams a joint trajectory to hardware and waits synchronously for a terminal
// success or failure outcome. There is no mid-flight cancellation once a goal is sent.
type Executor interface {
	ExecuteTrajectory(ctx context.Context, traj *JointTrajectory) error
}

// client speaks a line protocol to a trajectory controller over TCP: a header, one line per
// point, then an execute command, answered by a single OK or ERR line once the controller
// reaches a terminal state.
type client struct {
	address           string
	connectTimeout    time.Duration
	goalTimeTolerance time.Duration
	clock             clock.Clock
	logger            golog.Logger
}

// NewClient returns an Executor that streams trajectories to the controller at the given TCP
// address, with the default connect timeout and goal-time tolerance.
func NewClient(address string, logger golog.Logger) Executor {
	return &client{
		address:           address,
		connectTimeout:    DefaultConnectTimeout,
		goalTimeTolerance: DefaultGoalTimeTolerance,
		clock:             clock.New(),
		logger:            logger,
	}
}

func (c *client) ExecuteTrajectory(ctx context.Context, traj *JointTrajectory) error {
	if len(traj.Points) == 0 {
		return errors.New("refusing to execute an empty trajectory")
	}

	conn, err := net.DialTimeout("tcp", c.address, c.connectTimeout)
	if err != nil {
		return &ExecutionConnectionError{Address: c.address, Err: err}
	}
	defer func() {
		if err := conn.Close(); err != nil {
			c.logger.Debugw("error closing controller connection", "error", err)
		}
	}()

	// the controller must reach a terminal state within the trajectory's nominal duration plus
	// the goal-time tolerance
	deadline := c.clock.Now().Add(traj.Duration() + c.goalTimeTolerance)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return errors.Wrap(err, "error setting controller deadline")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "TRAJ %s %d %d\r\n", traj.ID, len(traj.JointNames), len(traj.Points))
	fmt.Fprintf(&sb, "JOINTS %s\r\n", strings.Join(traj.JointNames, " "))
	for _, point := range traj.Points {
		fmt.Fprintf(&sb, "P %.6f", point.TimeFromStart.Seconds())
		for _, position := range point.Positions {
			fmt.Fprintf(&sb, " %.6f", position)
		}
		sb.WriteString("\r\n")
	}
	fmt.Fprintf(&sb, "EXEC %.3f\r\n", c.goalTimeTolerance.Seconds())

	if _, err := conn.Write([]byte(sb.String())); err != nil {
		return errors.Wrap(err, "error sending trajectory to controller")
	}
	c.logger.Infow("trajectory sent, waiting for completion",
		"id", traj.ID, "points", len(traj.Points), "duration", traj.Duration())

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return errors.Wrap(err, "error reading reply from controller")
	}
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "OK") {
		return errors.Errorf("controller reported failure: %s", reply)
	}
	return nil
}
