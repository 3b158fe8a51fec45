package projectlog

import (
	"os"

	"github.com/FeifanTech/GEO-Nexus/config"
	"github.com/sirupsen/logrus"
)

// Init 按配置初始化全局 logrus，只在进程启动时调用一次
func Init() {
	logrus.SetFormatter(&JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level := logrus.Level(config.GetInstance().GetInt(config.AppLogLevel))
	if level > logrus.TraceLevel {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(config.GetInstance().GetBool(config.AppLogReportcaller))
}
