package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/blockyworld/blocky/internal/chunk"
	"github.com/blockyworld/blocky/internal/config"
	"github.com/blockyworld/blocky/internal/core/event"
	"github.com/blockyworld/blocky/internal/data"
	"github.com/blockyworld/blocky/internal/game"
	"github.com/blockyworld/blocky/internal/gen"
	"github.com/blockyworld/blocky/internal/persist"
	"github.com/blockyworld/blocky/internal/rules"
	"github.com/blockyworld/blocky/internal/scripting"
	"github.com/blockyworld/blocky/internal/term"
	"github.com/blockyworld/blocky/internal/world"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(worldName string, seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              Blocky  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m         2D 方塊沙盒 · 世界模擬核心        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m世界:\033[0m %s \033[90m(種子: %d)\033[0m\n\n", worldName, seed)
}

// displayWidth counts CJK characters as two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func printSection(title string) {
	lineLen := max(46-displayWidth(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-displayWidth(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	headless := flag.Int("headless", 0, "run this many ticks without a terminal, save and exit")
	worldName := flag.String("world", "", "world name (overrides [world] name)")
	flag.Parse()

	// 1. Load config
	cfgPath := "config/blocky.toml"
	if p := os.Getenv("BLOCKY_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *worldName != "" {
		cfg.World.Name = *worldName
	}

	// 2. Init logger. The terminal client owns stdout, so an interactive
	// run without a log file writes to blocky.log.
	if *headless == 0 && cfg.Logging.File == "" {
		cfg.Logging.File = "blocky.log"
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	printBanner(cfg.World.Name, seed)

	// 3. Data tables and scripts
	printSection("資料載入")

	spawns, err := data.LoadSpawnList(cfg.Data.SpawnList, chunk.Size)
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}
	printStat("敵人生成點", spawns.Count())

	palette, err := data.LoadPalette(cfg.Data.Palette)
	if err != nil {
		return fmt.Errorf("load palette: %w", err)
	}
	printStat("地形樣式", palette.Count())

	ectx := world.NewEngineContext(log, seed)
	ectx.Spawns = spawns
	ectx.Settings = settingsFrom(cfg.Sim)

	if cfg.Scripting.Enabled {
		luaEngine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer luaEngine.Close()
		ectx.Hooks = luaEngine
		printOK("Lua 腳本載入完成")
	}
	fmt.Println()

	// 4. Storage
	printSection("存檔")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeStore()

	names, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list worlds: %w", err)
	}
	printStat("已存世界", len(names))

	// 5. Load or generate the world
	sess, err := openWorld(ctx, store, ectx, cfg.World, seed, cfg.Sim.AutoSave)
	if err != nil {
		return err
	}
	fmt.Println()

	if *headless > 0 {
		return runHeadless(sess, *headless, log)
	}
	return runClient(sess, ectx, cfg, palette, log)
}

func settingsFrom(sim config.SimConfig) world.Settings {
	return world.Settings{
		LoadRadius: sim.LoadRadius,
		ViewW:      sim.ViewWidth,
		ViewH:      sim.ViewHeight,
		BreakTime:  sim.BreakTime,
		Reach: rules.Reach{
			Horizontal: sim.Reach.Horizontal,
			Down:       sim.Reach.Down,
			Up:         sim.Reach.Up,
		},
		EnemyDamage:   float64(sim.EnemyDamage),
		GrassCooldown: sim.GrassCooldown,
	}
}

func openStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (persist.Store, func(), error) {
	if cfg.Backend != "postgres" {
		store, err := persist.NewFileStore(cfg.SaveDir, log)
		if err != nil {
			return nil, nil, err
		}
		printOK(fmt.Sprintf("檔案存檔目錄 %s", cfg.SaveDir))
		return store, func() {}, nil
	}

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	printOK("PostgreSQL 連線成功")

	version, err := persist.RunMigrations(ctx, db.Pool)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	printOK(fmt.Sprintf("資料庫遷移完成 (版本 %d)", version))
	return persist.NewPGStore(db, log), db.Close, nil
}

// openWorld restores the named world from store, or generates and saves a
// new one. The session autosaves to store every autosave ticks.
func openWorld(ctx context.Context, store persist.Store, ectx *world.EngineContext, cfg config.WorldConfig, seed int64, autosave int) (*game.Session, error) {
	sd, err := store.Load(ctx, cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("load world %s: %w", cfg.Name, err)
	}
	if sd != nil {
		sess, err := game.Restore(ectx, sd)
		if err != nil {
			return nil, err
		}
		sess.EnableAutosave(store, cfg.Name, autosave)
		printOK(fmt.Sprintf("讀取世界 %s (%d×%d)", cfg.Name, len(sd.MapData[0]), len(sd.MapData)))
		return sess, nil
	}

	p := gen.Params{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Seed:          seed,
		Frequency:     cfg.Frequency,
		Octaves:       cfg.Octaves,
		CaveThreshold: cfg.CaveThreshold,
		TreeChance:    cfg.TreeChance,
	}
	if cfg.SeededTrees {
		p.TreeRand = rand.New(rand.NewSource(seed))
	}
	start := time.Now()
	raw := gen.Generate(p)
	printOK(fmt.Sprintf("生成新世界 %s (%d×%d, %s)", cfg.Name, raw.Width(), raw.Height(), time.Since(start).Round(time.Millisecond)))

	sess := game.NewSession(ectx, raw, nil)
	sess.EnableAutosave(store, cfg.Name, autosave)
	// 新世界立即存檔，之後的自動存檔只寫入有變動的世界
	if err := sess.Save(ctx); err != nil {
		return nil, fmt.Errorf("save new world: %w", err)
	}
	return sess, nil
}

func runHeadless(sess *game.Session, ticks int, log *zap.Logger) error {
	printSection("無介面模式")
	start := time.Now()
	for i := 0; i < ticks && sess.Phase() != world.Over; i++ {
		sess.Update(game.InputState{})
	}
	printStat("模擬 tick", int(sess.Ticks()))
	printStat("敵人", sess.World().Enemies.Len())
	printStat("掉落物", sess.World().Items.Len())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.Save(ctx); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	printReady(fmt.Sprintf("完成 (%s)", time.Since(start).Round(time.Millisecond)))
	log.Info("headless run finished", zap.Uint64("ticks", sess.Ticks()))
	return nil
}

func runClient(sess *game.Session, ectx *world.EngineContext, cfg *config.Config, palette *data.Palette, log *zap.Logger) error {
	audio := term.NewAudio(cfg.Client.SampleRate, cfg.Client.Volume, cfg.Client.Mute, log)
	defer audio.Close()
	sess.OnTileBroken(func(game.BrokenEvent) { audio.Play(term.CueBreak) })
	sess.OnTilePlaced(func(event.TilePlaced) { audio.Play(term.CuePlace) })
	sess.OnItemPickedUp(func(event.ItemPickedUp) { audio.Play(term.CuePickup) })
	sess.OnPlayerHurt(func(event.PlayerHurt) { audio.Play(term.CueHurt) })
	sess.OnPlayerDied(func(event.PlayerDied) { audio.Play(term.CueDeath) })

	printSection("遊戲就緒")
	printReady(fmt.Sprintf("遊戲迴圈啟動 (tick: %s)", cfg.Sim.TickRate))
	if audio.Enabled() {
		printReady("音效已啟用")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	client := term.NewClient(screen, palette)
	if err := client.Start(); err != nil {
		return err
	}
	defer client.Fini()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !client.Poll() {
				log.Info("玩家離開")
				return saveOnExit(sess, log)
			}
			ectx.Settings.ViewW, ectx.Settings.ViewH = client.Viewport()

			sess.Update(client.Input(sess.World().Player.HeadCell()))
			client.Draw(sess.Render(sess.Camera()), sess.Player(), sess.Phase())
		case sig := <-shutdownCh:
			log.Info("收到關閉信號", zap.String("signal", sig.String()))
			return saveOnExit(sess, log)
		}
	}
}

func saveOnExit(sess *game.Session, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.Save(ctx); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	log.Info("世界已儲存")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapCfg.Build()
}
