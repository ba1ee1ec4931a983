package config

// SafeErrorMessage release 模式下不向客户端暴露内部错误详情
// 未加载配置时视为开发环境，直接返回错误内容
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
