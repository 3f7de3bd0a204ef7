package prompt

import (
	"fmt"

	"github.com/seller-loop/studio/internal/models"
)

// Aspect templates carry their own output-format contract (labelled fields
// plus a short verbatim quote, 5-8 items except the star-rating enumeration).
// The Chinese wording is the production contract; translated variants would
// change what the models emit.
var aspectTemplates = map[models.VocAspect]string{
	models.AspectPurchaseMotivation: `
    作为电商数据分析师，请分析以下产品评论中的购买动机。请按照以下步骤进行：

    1. 识别主要购买动机：找出5-8个最常见的购买原因。
    2. 量化分析：估算每个动机在评论中的提及比例。
    3. 动机解释：简要解释每个购买动机的背景或意义。
    4. 代表性引用：为每个动机选择一个简短但有代表性的评论。

    使用以下格式：

    购买动机：[动机名称]
    提及占比：[百分比]
    解释：[简要说明]
    评论引用："[引用内容]"

    <产品描述>
    %s
    </产品描述>

    <产品评论>
    %s
    </产品评论>

    请用简洁、专业的语言呈现分析。
    `,
	models.AspectUserSuggestions: `
    作为产品改进专家，请分析以下产品评论中的用户建议。请按照以下步骤进行：

    1. 识别主要建议：找出5-8个最常见的用户改进建议。
    2. 量化分析：估算每个建议在评论中的提及比例。
    3. 建议价值：评估每个建议的潜在影响和可行性。
    4. 代表性引用：为每个建议选择一个简短但有代表性的评论。

    使用以下格式：

    用户建议：[建议内容]
    提及占比：[百分比]
    潜在价值：[高/中/低] - [简要说明]
    评论引用："[引用内容]"

    <产品描述>
    %s
    </产品描述>

    <产品评论>
    %s
    </产品评论>

    请用简洁、专业的语言呈现分析。
    `,
	models.AspectNegativeOpinions: `
    作为客户满意度分析师，请分析以下产品评论中的负面观点。请按照以下步骤进行：

    1. 识别主要问题：找出5-8个最常见的负面评价点。
    2. 量化分析：估算每个问题在负面评论中的占比。
    3. 影响评估：评估每个问题对整体客户满意度的影响程度。
    4. 代表性引用：为每个问题选择一个简短但有代表性的评论。

    使用以下格式：

    负面观点：[问题描述]
    占比：[在负面评论中的百分比]
    影响程度：[高/中/低] - [简要说明]
    评论引用："[引用内容]"

    <产品描述>
    %s
    </产品描述>

    <产品评论>
    %s
    </产品评论>

    请用简洁、专业的语言呈现分析。
    `,
	models.AspectProductExperience: `
    作为用户体验专家，请分析以下产品评论中的产品体验。请按照以下步骤进行：

    1. 识别关键体验点：找出5-8个最常被提及的产品体验方面。
    2. 量化分析：估算每个体验点在评论中的提及比例。
    3. 体验评价：总结用户对每个体验点的整体评价（正面/中性/负面）。
    4. 代表性引用：为每个体验点选择一个简短但有代表性的评论。

    使用以下格式：

    体验方面：[体验点描述]
    提及占比：[百分比]
    整体评价：[正面/中性/负面] - [简要说明]
    评论引用："[引用内容]"

    <产品描述>
    %s
    </产品描述>

    <产品评论>
    %s
    </产品评论>

    请用简洁、专业的语言呈现分析。
    `,
	models.AspectStarRatingDistribution: `
    作为数据统计专家，请分析以下产品评论中的星级分布。请按照以下步骤进行：

    1. 统计分布：计算每个星级（1-5星）的评论数量和百分比。
    2. 趋势分析：识别星级分布的整体趋势和特点。
    3. 关键因素：对于每个星级，总结影响该评分的主要因素。
    4. 代表性引用：为每个星级选择一个简短但有代表性的评论。

    使用以下格式：

    星级：[1-5星]
    占比：[百分比]
    主要因素：[简要说明影响该评分的因素]
    评论引用："[引用内容]"

    总体趋势：[对星级分布的整体分析]

    <产品描述>
    %s
    </产品描述>

    <产品评论>
    %s
    </产品评论>

    请用简洁、专业的语言呈现分析。
    `,
	models.AspectUserExpectations: `
    作为消费者洞察专家，请分析以下产品评论中的用户期望。请按照以下步骤进行：

    1. 识别主要期望：找出5-8个最常见的用户期望。
    2. 量化分析：估算每个期望在评论中的提及比例。
    3. 满足程度：评估产品对每个期望的满足程度。
    4. 代表性引用：为每个期望选择一个简短但有代表性的评论。

    使用以下格式：

    用户期望：[期望描述]
    提及占比：[百分比]
    满足程度：[高/中/低] - [简要说明]
    评论引用："[引用内容]"

    <产品描述>
    %s
    </产品描述>

    <产品评论>
    %s
    </产品评论>

    请用简洁、专业的语言呈现分析。
    `,
}

// VocAspect builds the per-aspect analysis prompt for one of the six fixed
// aspects. Returns false when the aspect is unknown.
func VocAspect(aspect models.VocAspect, reviews *models.ReviewSet) (string, bool) {
	tmpl, ok := aspectTemplates[aspect]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(tmpl, "", reviews.Verbatim()), true
}
