package match

// DefaultAliasConfig returns the built-in alias tables covering the common
// English, pinyin and Chinese spellings seen in residential installations.
// Deployments with their own vocabulary override these via the aliases
// file referenced in config.yaml.
func DefaultAliasConfig() *AliasConfig {
	return &AliasConfig{
		Floors: map[string][]string{
			"1": {"一楼", "1楼", "yilou", "first", "firstfloor", "first_floor", "ground", "ground_floor"},
			"2": {"二楼", "2楼", "erlou", "second", "secondfloor", "second_floor"},
			"3": {"三楼", "3楼", "sanlou", "third", "thirdfloor", "third_floor"},
		},
		Rooms: map[string][]string{
			"living_room":    {"客厅", "keting", "living", "livingroom", "lounge"},
			"bedroom":        {"卧室", "woshi", "bed_room"},
			"master_bedroom": {"主卧", "zhuwo", "master", "masterbedroom"},
			"kitchen":        {"厨房", "chufang"},
			"bathroom":       {"浴室", "卫生间", "yushi", "weishengjian", "washroom"},
			"study":          {"书房", "shufang", "office"},
			"dining_room":    {"餐厅", "canting", "dining", "diningroom"},
			"garage":         {"车库", "cheku"},
			"garden":         {"花园", "后院", "huayuan", "houyuan", "backyard", "yard"},
			"balcony":        {"阳台", "yangtai"},
			"entertainment":  {"娱乐室", "影音室", "yuleshi", "tvroom", "tv_room"},
		},
		DeviceTypes: map[string][]string{
			"light":         {"lights", "lamp", "deng", "灯"},
			"switch":        {"kaiguan", "开关", "socket", "chazuo", "插座"},
			"climate":       {"ac", "aircon", "kongtiao", "空调"},
			"fan":           {"fengshan", "风扇"},
			"cover":         {"chuanglian", "窗帘"},
			"camera":        {"cam", "shexiangtou", "摄像头"},
			"sensor":        {"chuanganqi", "传感器"},
			"binary_sensor": {"binarysensor", "presence", "存在", "在家"},
			"occupancy":     {"occupied", "占用", "占用传感器"},
			"motion":        {"运动", "运动传感器", "人体传感器"},
		},
		GenericNames: map[string][]string{
			"light":   {"light", "lights", "lamp", "lamps", "deng", "灯", "灯光", "灯具", "照明"},
			"switch":  {"switch", "switches", "kaiguan", "开关", "socket", "sockets", "chazuo", "插座", "outlet", "plug"},
			"climate": {"ac", "aircon", "kongtiao", "空调", "冷气", "climate"},
			"fan":     {"fan", "fans", "fengshan", "风扇"},
			"cover":   {"cover", "covers", "chuanglian", "窗帘", "curtain", "blind"},
			"lock":    {"lock", "locks", "suo", "锁", "门锁"},
			"camera":  {"camera", "cameras", "cam", "shexiangtou", "摄像头", "监控"},
			"sensor": {
				"sensor", "sensors", "chuanganqi", "传感器",
				"temperature", "temp", "wendu", "温度", "temperaturesensor", "温度传感器",
				"humidity", "shidu", "湿度", "湿度传感器",
				"motion", "renti", "人体",
			},
		},
	}
}
