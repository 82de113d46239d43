package enrichment

const cleanPrompt = `请对以下语音识别文字稿进行清洗和优化：

要求：
1. 修正识别错误和口语问题
2. 去除重复、卡壳、病句和不通顺的表达
3. 规范标点符号，必须使用中文标点符号
4. 去除过多的语气词（如：嗯、啊、哎等），但保留适当的语气词以维持说话风格
5. 将"雌性"统一改为"雌竞"，"雄性"统一改为"雄竞"
6. 说话人标记：将咨询用户改为"当事人"，咨询师改为"琪琪"
7. 必须保持原意、风格和语气，不要改变说话者的核心观点
8. 保留具体的人物、数据、场景描述

原始文字稿：
%s

请直接输出清洗后的文字稿，不要添加任何说明或注释。`

const metadataPrompt = `请分析以下案例内容，生成结构化的元数据信息：

案例内容：
%s

请按以下JSON格式输出（只输出JSON，不要其他内容）：
{
    "title": "案例标题（30字以内，概括核心问题，吸引读者关注）",
    "primary_category": "一级分类",
    "secondary_category": "二级分类",
    "tags": ["标签1", "标签2", "标签3", "标签4", "标签5"],
    "target_audience": "适用人群描述",
    "applicable_scenarios": "适用场景描述"
}

分类要求：
- 一级分类：情感婚恋、职业发展、家庭关系、财富管理、个人成长等（总类目不超过8个）
- 一级分类现有类目：情感婚恋、职业发展、家庭关系、财富管理、个人成长
- 二级分类：基于一级分类细化，如"年龄差恋爱、职业规划、家族企业"等（总类目不超过50个）
- 二级分类现有类目：年龄差恋爱、职业规划、家族企业
- 标签：提供%d-%d个关键标签，如"高净值、年龄差、创业、留学生"等
- 适用人群：简洁描述哪些人群会对此案例感兴趣
- 适用场景：描述在什么情况下这个案例有参考价值

注意：标题要能击中用户痛点、引起共情或好奇心。`
