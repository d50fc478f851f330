package main

import (
	"fmt"
	"os"

	"github.com/On-Jun9/ShutterSort/internal/config"
	"github.com/On-Jun9/ShutterSort/internal/pipeline"
	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/spf13/cobra"
)

var (
	appVersion      = "1.0.0"
	cfgFile         string
	source          string
	dest            string
	copyMode        bool
	dryRun          bool
	recursive       bool
	maxDepth        int
	verbose         bool
	preferMetadata  bool
	countExtensions bool
	hashAlgorithm   string
	useExifTool     bool
	verifyCopies    bool
	logFile         string
	logJSON         bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shuttersort",
	Short: "Sort images and videos into dated directories",
	Long: `ShutterSort reads the capture date of photos and videos from their metadata
(EXIF, camera XML sidecars) and from their filename, then moves or copies each
file into DEST/YYYY/YYYY_MM_DD. Existing dated directories, including ones with
a suffix such as 2020_05_01.vacation, are reused.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sort the files of a directory",
	RunE:  runSort,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appVersion)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	runCmd.Flags().StringVar(&cfgFile, "config", "", "config file path")
	runCmd.Flags().StringVarP(&source, "from", "f", "", "directory to read images from (default \".\")")
	runCmd.Flags().StringVarP(&dest, "to", "t", "", "directory to move/copy images into (default \".\")")
	runCmd.Flags().BoolVarP(&copyMode, "copy", "c", false, "copy instead of moving images")
	runCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "report what would happen without touching files")
	runCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into every subdirectory")
	runCmd.Flags().IntVarP(&maxDepth, "max-depth", "m", 0, "visit at most this many directory levels when not recursive")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic details")
	runCmd.Flags().BoolVar(&preferMetadata, "prefer-metadata", false, "on date conflicts trust the metadata and rename the file")
	runCmd.Flags().BoolVar(&countExtensions, "count-extensions", false, "only count file extensions")
	runCmd.Flags().StringVar(&hashAlgorithm, "hash", "", "duplicate detection digest: sha1, xxhash")
	runCmd.Flags().BoolVar(&useExifTool, "exiftool", false, "fall back to exiftool for metadata")
	runCmd.Flags().BoolVar(&verifyCopies, "verify", false, "verify copies with a content hash")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "log file path")
	runCmd.Flags().BoolVar(&logJSON, "log-json", false, "write JSON lines to the log file")
}

func runSort(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if source != "" {
		cfg.Source = source
	}
	if dest != "" {
		cfg.Dest = dest
	}
	if flags.Changed("copy") {
		cfg.Copy = copyMode
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("recursive") {
		cfg.Recursive = recursive
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("prefer-metadata") {
		cfg.PreferMetadata = preferMetadata
	}
	if flags.Changed("count-extensions") {
		cfg.CountExtensions = countExtensions
	}
	if hashAlgorithm != "" {
		cfg.HashAlgorithm = types.HashAlgorithm(hashAlgorithm)
	}
	if flags.Changed("exiftool") {
		cfg.UseExifTool = useExifTool
	}
	if flags.Changed("verify") {
		cfg.VerifyCopies = verifyCopies
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logJSON {
		cfg.LogJSON = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Close()

	_, err = p.Run()
	return err
}
