package pixicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/esimov/pixicon/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// ErrNoSeeds is returned when a batch run has nothing to generate.
var ErrNoSeeds = errors.New("no seeds to generate icons for")

// Ops holds the input and output options of an execution.
type Ops struct {
	// Seeds is a file listing one seed per line. It can be a local file,
	// a remote URL or the pipe name for the standard input.
	Seeds string
	// Dst is the output file of a single run or the output directory of a batch run.
	Dst      string
	PipeName string
	Workers  int
	// DataURI prints the PNG data URL of a single run on the standard output.
	DataURI bool
	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// job pairs a seed with the file its icon is written to.
type job struct {
	seed string
	path string
}

// result holds the relevant information about a generated icon.
type result struct {
	seed string
	path string
	err  error
}

// Execute generates either a single icon for the processor seed
// or, when a seeds list is provided, one icon per seed concurrently.
func (p *Processor) Execute(op *Ops) error {
	if op.Stdout == nil {
		op.Stdout = os.Stdout
	}
	if op.Stderr == nil {
		op.Stderr = os.Stderr
	}
	if p.Spinner == nil {
		defaultMsg := fmt.Sprintf("%s %s",
			utils.DecorateText("▦ PIXICON", utils.StatusMessage),
			utils.DecorateText("⇢ generating icons...", utils.DefaultMessage),
		)
		p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80)
	}

	now := time.Now()
	var err error
	if op.Seeds != "" {
		err = p.executeBatch(op)
	} else {
		err = p.executeSingle(op)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(op.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// executeSingle generates the icon of the processor seed.
func (p *Processor) executeSingle(op *Ops) error {
	icon, err := p.Generate()
	if err != nil {
		return err
	}

	var w io.Writer
	switch {
	case op.DataURI:
	case op.Dst == "" || op.Dst == op.PipeName:
		if f, ok := op.Stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		w = op.Stdout
	default:
		if ext := filepath.Ext(op.Dst); ext != "" {
			format, err := FormatFromFilename(op.Dst)
			if err != nil {
				return err
			}
			p.Format = format
		}
		f, err := os.Create(op.Dst)
		if err != nil {
			return fmt.Errorf("unable to create the destination file: %w", err)
		}
		defer f.Close()
		w = f
	}

	err = p.Export(w, icon, func(url string) {
		if op.DataURI {
			fmt.Fprintln(op.Stdout, url)
		}
	})
	if err != nil {
		if f, ok := w.(*os.File); ok && f != op.Stdout {
			os.Remove(f.Name())
		}
		return err
	}

	if icon.Seed == "" {
		fmt.Fprintf(op.Stderr, "Session seed: %s\n", utils.DecorateText(icon.SessionSeed, utils.StatusMessage))
	}
	if w != nil && op.Dst != "" && op.Dst != op.PipeName {
		op.printOpStatus(op.Dst, nil)
	}
	return nil
}

// executeBatch generates one icon per seed concurrently into the destination directory.
func (p *Processor) executeBatch(op *Ops) error {
	seeds, err := op.readSeeds()
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return ErrNoSeeds
	}
	if op.Dst == "" || op.Dst == op.PipeName {
		return errors.New("a destination directory is required when generating icons in batch")
	}
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	// Limit the concurrently running workers to maxWorkers.
	if op.Workers <= 0 || op.Workers > maxWorkers {
		op.Workers = runtime.NumCPU()
	}

	format := p.Format
	if format == "" {
		format = PNG
	}
	jobs := batchJobs(op.Dst, seeds, format)

	p.Spinner.Start()
	defer p.Spinner.Stop()

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	var wg sync.WaitGroup
	queue := produce(done, jobs)

	wg.Add(op.Workers)
	for i := 0; i < op.Workers; i++ {
		go func() {
			defer wg.Done()
			p.consumer(format, ch, done, queue)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var (
		failed int
		first  error
	)
	for res := range ch {
		if res.err != nil {
			failed++
			if first == nil {
				first = fmt.Errorf("seed %q: %w", res.seed, res.err)
			}
		}
		op.printOpStatus(res.path, res.err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d icons failed, first error: %w", failed, len(jobs), first)
	}
	return nil
}

// batchJobs maps every distinct seed to its own output file. Seeds whose
// sanitized names collide get their hash appended, so no icon overwrites another.
func batchJobs(dest string, seeds []string, format Format) []job {
	jobs := make([]job, 0, len(seeds))
	seen := make(map[string]bool, len(seeds))
	taken := make(map[string]bool, len(seeds))

	for _, seed := range seeds {
		if seen[seed] {
			continue
		}
		seen[seed] = true

		base := utils.SanitizeFileName(seed)
		name := base
		if taken[strings.ToLower(name)] {
			name = fmt.Sprintf("%s-%d", base, Hash(seed))
		}
		for i := 2; taken[strings.ToLower(name)]; i++ {
			name = fmt.Sprintf("%s-%d-%d", base, Hash(seed), i)
		}
		taken[strings.ToLower(name)] = true

		jobs = append(jobs, job{seed: seed, path: filepath.Join(dest, name+format.Ext())})
	}
	return jobs
}

// produce sends the jobs on a new channel until all of them are consumed or done is closed.
func produce(done <-chan struct{}, jobs []job) <-chan job {
	out := make(chan job)
	go func() {
		defer close(out)
		for _, j := range jobs {
			select {
			case <-done:
				return
			case out <- j:
			}
		}
	}()
	return out
}

// consumer reads the jobs from the queue and writes the generated icons
// into their files. Every icon is rendered into its own buffer.
func (p *Processor) consumer(
	format Format,
	res chan<- result,
	done <-chan struct{},
	queue <-chan job,
) {
	for j := range queue {
		err := p.writeIcon(j.seed, j.path, format)

		select {
		case <-done:
			return
		case res <- result{seed: j.seed, path: j.path, err: err}:
		}
	}
}

// writeIcon generates the icon of a seed and encodes it into a file.
func (p *Processor) writeIcon(seed, path string, format Format) error {
	icon, err := p.GenerateFor(seed)
	if err != nil {
		return err
	}
	img, err := p.Image(icon)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// readSeeds reads the non blank lines of the seeds source.
func (op *Ops) readSeeds() ([]string, error) {
	var r io.Reader

	switch {
	case op.Seeds == op.PipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		r = os.Stdin
	case utils.IsValidUrl(op.Seeds):
		f, err := utils.DownloadFile(op.Seeds, "seeds")
		if err != nil {
			return nil, err
		}
		defer os.Remove(f.Name())
		defer f.Close()
		r = f
	default:
		f, err := os.Open(op.Seeds)
		if err != nil {
			return nil, fmt.Errorf("unable to open the seeds file: %w", err)
		}
		defer f.Close()
		r = f
	}
	return scanSeeds(r)
}

// scanSeeds returns the trimmed, non blank lines of the reader.
func scanSeeds(r io.Reader) ([]string, error) {
	var seeds []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			seeds = append(seeds, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unable to read the seeds: %w", err)
	}
	return seeds, nil
}

// printOpStatus displays the relevant information about a generated icon.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(op.Stderr, "%s%s\n",
			utils.DecorateText("\nError generating the icon: "+filepath.Base(fname), utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v", err), utils.DefaultMessage),
		)
		return
	}
	fmt.Fprintf(op.Stderr, "\nThe icon has been saved as: %s\n",
		utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
	)
}
