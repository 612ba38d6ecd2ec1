package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/erizocosmico/bitsort"
	"github.com/erizocosmico/bitsort/internal/farm"
	"github.com/erizocosmico/bitsort/internal/sched"
	"github.com/erizocosmico/bitsort/internal/sorter"
	"github.com/erizocosmico/bitsort/internal/task"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/src-d/go-cli.v0"
)

type sortCmd struct {
	cli.PlainCommand `name:"sort" short-description:"sort integers through the bitonic network" long-description:""`
	Workers          []string      `long:"worker" short:"w" description:"address of a worker to ship comparisons to. May be given multiple times; when none is given sorting runs in process"`
	Parallelism      uint          `long:"parallelism" short:"p" default:"0" description:"maximum number of in-process comparisons running at once. Defaults to the number of CPUs"`
	WriteTimeout     time.Duration `long:"write-timeout" default:"10s" description:"maximum time to wait for write operations to workers before aborting"`
	ReadTimeout      time.Duration `long:"read-timeout" default:"10s" description:"maximum time to wait for read operations to workers before aborting"`
}

func (c *sortCmd) ExecuteContext(ctx context.Context, args []string) error {
	nums, err := parseInputs(args)
	if err != nil {
		return err
	}

	var s bitsort.Scheduler
	if len(c.Workers) > 0 {
		fs, err := farm.NewScheduler(c.Workers, &farm.SchedulerOptions{
			WorkerOptions: &farm.ClientOptions{
				ReadTimeout:  c.ReadTimeout,
				WriteTimeout: c.WriteTimeout,
			},
		})
		if err != nil {
			return err
		}

		defer fs.Close()
		s = fs
	} else {
		s = sched.NewPool(int(c.Parallelism), task.Handlers())
	}

	logrus.Infof("running bitonic sorter for %d inputs", len(nums))

	sorted, err := sorter.Sort(ctx, s, nums)
	if err != nil {
		return err
	}

	var out = make([]string, len(sorted))
	for i, v := range sorted {
		out[i] = strconv.FormatInt(int64(v), 10)
	}

	fmt.Println(strings.Join(out, " "))
	return nil
}

// parseInputs reads the values to sort from positional arguments. A token
// starting with a dash is a runtime flag, not a value: it is skipped
// together with the one argument following it.
func parseInputs(args []string) ([]int32, error) {
	var nums []int32
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			i++
			continue
		}

		n, err := strconv.ParseInt(args[i], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid input: %q is not a number", args[i])
		}

		nums = append(nums, int32(n))
	}

	if len(nums) == 0 {
		return nil, bitsort.ErrInvalidInput
	}

	return nums, nil
}

func init() {
	app.AddCommand(new(sortCmd))
}
