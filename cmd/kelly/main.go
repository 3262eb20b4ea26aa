package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/betbot/gokelly/internal/domain"
	"github.com/betbot/gokelly/internal/report"
	"github.com/betbot/gokelly/internal/sizing"
	"github.com/betbot/gokelly/pkg/config"
	"github.com/betbot/gokelly/pkg/logger"
	"github.com/betbot/gokelly/pkg/marketmath"
)

func main() {
	// 解析命令行参数
	var (
		sideFlag = flag.String("side", "", "YES 或 NO（下注方向）")
		ps       = flag.Float64("ps", math.NaN(), "主观概率（百分比 0-100，事件解析为 YES 的概率）")
		k        = flag.Float64("k", math.NaN(), "行权价/市场报价（百分比 0-100，YES 空间）")
		bankroll = flag.Float64("bankroll", 0, "可用资金（>0，缺省取配置 sizing.defaultBankroll）")
		kelly    = flag.Float64("kelly", 0, "分数凯利乘数 (0,1]，缺省取配置 sizing.defaultKelly")
		isBid    = flag.Bool("is-bid", true, "true=按报价买入（做多），false=卖出/做空")
		jsonOut  = flag.Bool("json", false, "以 JSON 输出结果（stdout）")
		cfgPath  = flag.String("config", "", "配置文件路径（.yaml/.yml/.json）")

		// 可选：直接给一档盘口（百分比），由镜像价推导有效行权价，替代 -k
		yesBid = flag.Float64("yes-bid", 0, "YES 买一价（百分比，可选，与 -k 二选一）")
		yesAsk = flag.Float64("yes-ask", 0, "YES 卖一价（百分比，可选）")
		noBid  = flag.Float64("no-bid", 0, "NO 买一价（百分比，可选）")
		noAsk  = flag.Float64("no-ask", 0, "NO 卖一价（百分比，可选）")
	)
	flag.Parse()

	// 加载 .env（没有也无妨，静默回退到进程环境变量）
	_ = godotenv.Load()

	if *cfgPath != "" {
		config.SetConfigPath(*cfgPath)
	}
	cfg, err := config.Load()
	if err != nil {
		logrus.Errorf("加载配置失败: %v", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		logrus.Errorf("初始化日志失败: %v", err)
		os.Exit(1)
	}

	side, err := domain.ParseSide(*sideFlag)
	if err != nil {
		fail(err)
	}

	// 命令行未给的参数回退到配置缺省值
	if *kelly == 0 {
		*kelly = cfg.Sizing.DefaultKelly
	}
	if *bankroll == 0 {
		*bankroll = cfg.Sizing.DefaultBankroll
	}

	// 行权价：-k 优先；未给时尝试从盘口推导有效可执行价
	strike := *k
	if math.IsNaN(strike) {
		strike, err = strikeFromBook(side, *isBid, *yesBid, *yesAsk, *noBid, *noAsk)
		if err != nil {
			fail(err)
		}
		logger.Debugf("从盘口推导有效行权价: %.2f%%", strike)
	}

	spec := domain.BetSpec{
		Side:     side,
		Ps:       *ps,
		Strike:   strike,
		Bankroll: *bankroll,
		Kelly:    *kelly,
		IsBid:    *isBid,
	}

	res, err := sizing.Calculate(spec)
	if err != nil {
		fail(err)
	}

	if *jsonOut {
		out, err := report.RenderJSON(spec, res)
		if err != nil {
			fail(err)
		}
		fmt.Println(out)
		return
	}
	fmt.Println(report.Render(spec, res))
}

// strikeFromBook 从一档盘口推导交易方向+意图的有效可执行价，并换算回
// YES 空间的百分比行权价（NO 侧取镜像价）。
func strikeFromBook(side domain.Side, isBid bool, yesBid, yesAsk, noBid, noAsk float64) (float64, error) {
	tob := marketmath.TopOfBook{
		YesBidPips: marketmath.PipsFromPercent(yesBid),
		YesAskPips: marketmath.PipsFromPercent(yesAsk),
		NoBidPips:  marketmath.PipsFromPercent(noBid),
		NoAskPips:  marketmath.PipsFromPercent(noAsk),
	}
	pips, err := marketmath.EffectiveTradePips(tob, side == domain.SideYes, isBid)
	if err != nil {
		return 0, &domain.InvalidInputError{
			Field:  "k",
			Reason: fmt.Sprintf("strike not given and book is unusable: %v", err),
		}
	}
	if pips <= 0 {
		return 0, &domain.InvalidInputError{
			Field:  "k",
			Reason: "strike not given and no executable price on the requested side",
		}
	}
	// EffectiveTradePips 返回交易一侧的口径；NO 侧换回 YES 空间
	if side == domain.SideNo {
		pips = marketmath.Mirror(pips)
	}
	return marketmath.PercentFromPips(pips), nil
}

// fail 输出错误并退出（校验错误是唯一的错误类别，直接透传给调用者）
func fail(err error) {
	logger.Errorf("%v", err)
	os.Exit(1)
}
